package interview

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrSpeechUnsupported is returned by a SpeechPlatform lacking a capability.
var ErrSpeechUnsupported = errors.New("speech capability not available")

// SpeechPlatform is the host's speech-to-text and text-to-speech capability.
// Callbacks may be invoked from any goroutine, including synchronously from
// the call that registered them.
type SpeechPlatform interface {
	// StartRecognition begins continuous transcription, calling onFinal for
	// every finalized chunk and onError when recognition fails.
	StartRecognition(onFinal func(chunk string), onError func(err error)) error
	StopRecognition() error
	// Synthesize speaks text and calls onEnd once synthesis completes.
	Synthesize(text string, onEnd func()) error
	CancelSynthesis()
}

// NoopSpeech is the platform of hosts without speech support.
type NoopSpeech struct{}

func (NoopSpeech) StartRecognition(func(string), func(error)) error { return ErrSpeechUnsupported }
func (NoopSpeech) StopRecognition() error                           { return nil }
func (NoopSpeech) Synthesize(string, func()) error                  { return ErrSpeechUnsupported }
func (NoopSpeech) CancelSynthesis()                                 {}

// VoiceBridge gives the controller a stable listen/speak contract over a
// SpeechPlatform and tracks the listening and speaking indicators. A missing
// or failing capability is never fatal.
type VoiceBridge struct {
	platform SpeechPlatform
	onChunk  func(chunk string)

	mu        sync.Mutex
	listening bool
	speaking  bool
	// utterance identifies the current synthesis so a late onEnd of a
	// cancelled utterance cannot clear the flag of a newer one.
	utterance uint64
	// recognition plays the same role for recognizer errors.
	recognition uint64
}

// NewVoiceBridge wraps platform. Finalized transcription chunks are passed to
// onChunk. A nil platform behaves like NoopSpeech.
func NewVoiceBridge(platform SpeechPlatform, onChunk func(chunk string)) *VoiceBridge {
	if platform == nil {
		platform = NoopSpeech{}
	}
	if onChunk == nil {
		onChunk = func(string) {}
	}
	return &VoiceBridge{platform: platform, onChunk: onChunk}
}

// ListenStart begins transcription. It is a no-op while already listening.
func (b *VoiceBridge) ListenStart() {
	b.mu.Lock()
	if b.listening {
		b.mu.Unlock()
		return
	}
	b.listening = true
	b.recognition++
	id := b.recognition
	b.mu.Unlock()

	err := b.platform.StartRecognition(b.onChunk, func(err error) {
		log.Warn().Err(err).Msg("Speech recognition failed")
		b.clearListening(id)
	})
	if err != nil {
		if !errors.Is(err, ErrSpeechUnsupported) {
			log.Warn().Err(err).Msg("Could not start speech recognition")
		}
		b.clearListening(id)
	}
}

// ListenStop ends transcription. It is a no-op while not listening.
func (b *VoiceBridge) ListenStop() {
	b.mu.Lock()
	if !b.listening {
		b.mu.Unlock()
		return
	}
	b.listening = false
	b.recognition++
	b.mu.Unlock()

	if err := b.platform.StopRecognition(); err != nil {
		log.Warn().Err(err).Msg("Could not stop speech recognition")
	}
}

// ToggleListening flips between ListenStart and ListenStop.
func (b *VoiceBridge) ToggleListening() {
	if b.Listening() {
		b.ListenStop()
		return
	}
	b.ListenStart()
}

// Speak starts synthesizing text. While already speaking it cancels the
// current utterance instead and returns.
func (b *VoiceBridge) Speak(text string) {
	b.mu.Lock()
	if b.speaking {
		b.speaking = false
		b.utterance++
		b.mu.Unlock()
		b.platform.CancelSynthesis()
		return
	}
	b.speaking = true
	b.utterance++
	id := b.utterance
	b.mu.Unlock()

	err := b.platform.Synthesize(text, func() { b.clearSpeaking(id) })
	if err != nil {
		if !errors.Is(err, ErrSpeechUnsupported) {
			log.Warn().Err(err).Msg("Speech synthesis failed")
		}
		b.clearSpeaking(id)
	}
}

// Cancel stops any synthesis in progress.
func (b *VoiceBridge) Cancel() {
	b.mu.Lock()
	b.speaking = false
	b.utterance++
	b.mu.Unlock()
	b.platform.CancelSynthesis()
}

// Shutdown stops listening and cancels synthesis.
func (b *VoiceBridge) Shutdown() {
	b.ListenStop()
	b.Cancel()
}

func (b *VoiceBridge) Listening() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.listening
}

func (b *VoiceBridge) Speaking() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.speaking
}

func (b *VoiceBridge) clearListening(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.recognition == id {
		b.listening = false
	}
}

func (b *VoiceBridge) clearSpeaking(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.utterance == id {
		b.speaking = false
	}
}
