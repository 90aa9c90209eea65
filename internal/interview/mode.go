package interview

import (
	"fmt"
	"strings"
)

// Mode is one of the four interview practice categories.
type Mode string

const (
	ModePronunciation  Mode = "pronunciation"
	ModeCommunication  Mode = "communication"
	ModeProblemSolving Mode = "problem_solving"
	ModeDiscussion     Mode = "discussion"
)

// DefaultMode is used for evaluation requests that omit the mode.
const DefaultMode = ModeCommunication

// ModeInfo is the display metadata of a mode.
type ModeInfo struct {
	ID          Mode   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// variant owns everything that differs between modes: display metadata, the
// question schema handed to the model, the evaluation prompt and how the
// model's evaluation is decoded.
type variant struct {
	info ModeInfo

	questionInstructions string
	questionSchema       string

	evaluationIntro  func(question, answer string) string
	evaluationSchema string

	sanitize       func(q *Question)
	newEvaluation  func() Evaluation
	requiredFields []string
}

var variants = map[Mode]*variant{
	ModePronunciation: {
		info: ModeInfo{
			ID:          ModePronunciation,
			Title:       "Pronunciation",
			Description: "Practice reading technical terms and phrases aloud. Get scored on clarity and accuracy.",
			Color:       "#3b82f6",
		},
		questionInstructions: "Generate %d technical pronunciation challenges for an interview. These should be technical terms, phrases, and sentences that the candidate would encounter in their role. Each should test different technical vocabulary.",
		questionSchema: `{
  "questions": [
    {
      "type": "pronunciation",
      "text": "<technical term or phrase to pronounce>",
      "context": "<a sentence using this term in context>",
      "difficulty": "<easy|medium|hard>"
    }
  ]
}`,
		evaluationIntro: func(question, answer string) string {
			return fmt.Sprintf(`You are evaluating a pronunciation/speaking exercise. The candidate was asked to read/pronounce the following:

Target Text: %s
What the candidate said (transcribed): %s

Evaluate their pronunciation accuracy and clarity.`, question, answer)
		},
		evaluationSchema: `{
  "pronunciation_score": <number 1-10>,
  "clarity_score": <number 1-10>,
  "content_score": <number 1-10>,
  "overall_score": <number 1-10>,
  "feedback": "<specific feedback on pronunciation>",
  "suggested_improvement": "<how to improve pronunciation>"
}`,
		sanitize: func(q *Question) {
			q.Hint, q.ExpectedConcepts, q.KeyPoints = "", nil, nil
		},
		newEvaluation:  func() Evaluation { return &PronunciationEvaluation{} },
		requiredFields: []string{"pronunciation_score", "clarity_score", "content_score", "overall_score", "feedback"},
	},
	ModeCommunication: {
		info: ModeInfo{
			ID:          ModeCommunication,
			Title:       "Communication",
			Description: "Behavioral questions using STAR method. Practice storytelling and structured responses.",
			Color:       "#8b5cf6",
		},
		questionInstructions: "Generate %d behavioral and communication interview questions using the STAR method framework. Include a mix of teamwork, leadership, conflict resolution, and adaptability questions.",
		questionSchema: `{
  "questions": [
    {
      "type": "communication",
      "text": "<behavioral interview question>",
      "hint": "<brief hint about what the interviewer is looking for>",
      "difficulty": "<easy|medium|hard>"
    }
  ]
}`,
		evaluationIntro: func(question, answer string) string {
			return fmt.Sprintf(`You are evaluating a behavioral/communication interview answer.

Question: %s
Candidate's Answer: %s

Evaluate using the STAR method (Situation, Task, Action, Result).`, question, answer)
		},
		evaluationSchema: `{
  "structure_score": <number 1-10, how well they used STAR method>,
  "relevance_score": <number 1-10>,
  "clarity_score": <number 1-10>,
  "overall_score": <number 1-10>,
  "feedback": "<concise actionable feedback>",
  "suggested_answer": "<improved STAR method answer>"
}`,
		sanitize: func(q *Question) {
			q.Context, q.ExpectedConcepts, q.KeyPoints = "", nil, nil
		},
		newEvaluation:  func() Evaluation { return &CommunicationEvaluation{} },
		requiredFields: []string{"structure_score", "relevance_score", "clarity_score", "overall_score", "feedback"},
	},
	ModeProblemSolving: {
		info: ModeInfo{
			ID:          ModeProblemSolving,
			Title:       "Problem Solving",
			Description: "Algorithm and coding challenges. Explain your approach and write pseudocode solutions.",
			Color:       "#10b981",
		},
		questionInstructions: "Generate %d technical problem-solving interview questions. Include algorithm challenges, coding problems, and logical thinking questions appropriate for the role.",
		questionSchema: `{
  "questions": [
    {
      "type": "problem_solving",
      "text": "<problem statement>",
      "hint": "<hint about approach>",
      "expected_concepts": ["<key concept 1>", "<key concept 2>"],
      "difficulty": "<easy|medium|hard>"
    }
  ]
}`,
		evaluationIntro: func(question, answer string) string {
			return fmt.Sprintf(`You are evaluating a technical problem-solving answer.

Question: %s
Candidate's Answer: %s

Evaluate their technical accuracy, approach, and problem-solving methodology.`, question, answer)
		},
		evaluationSchema: `{
  "technical_score": <number 1-10>,
  "approach_score": <number 1-10>,
  "completeness_score": <number 1-10>,
  "overall_score": <number 1-10>,
  "feedback": "<detailed feedback>",
  "suggested_answer": "<optimal approach/solution>"
}`,
		sanitize: func(q *Question) {
			q.Context, q.KeyPoints = "", nil
		},
		newEvaluation:  func() Evaluation { return &ProblemSolvingEvaluation{} },
		requiredFields: []string{"technical_score", "approach_score", "completeness_score", "overall_score", "feedback"},
	},
	ModeDiscussion: {
		info: ModeInfo{
			ID:          ModeDiscussion,
			Title:       "Discussion",
			Description: "System design and technical discussions. Demonstrate depth of knowledge and trade-off analysis.",
			Color:       "#f59e0b",
		},
		questionInstructions: "Generate %d technical discussion / system design interview questions. Include architecture decisions, trade-offs, and open-ended technical discussions.",
		questionSchema: `{
  "questions": [
    {
      "type": "discussion",
      "text": "<discussion question or scenario>",
      "key_points": ["<point to cover 1>", "<point to cover 2>"],
      "difficulty": "<easy|medium|hard>"
    }
  ]
}`,
		evaluationIntro: func(question, answer string) string {
			return fmt.Sprintf(`You are evaluating a technical discussion/system design answer.

Question: %s
Candidate's Answer: %s

Evaluate their depth of knowledge, ability to discuss trade-offs, and overall communication.`, question, answer)
		},
		evaluationSchema: `{
  "depth_score": <number 1-10>,
  "communication_score": <number 1-10>,
  "coverage_score": <number 1-10>,
  "overall_score": <number 1-10>,
  "feedback": "<detailed feedback>",
  "key_points_missed": ["<missed point 1>", "<missed point 2>"],
  "suggested_answer": "<comprehensive answer covering key points>"
}`,
		sanitize: func(q *Question) {
			q.Context, q.Hint, q.ExpectedConcepts = "", "", nil
		},
		newEvaluation:  func() Evaluation { return &DiscussionEvaluation{} },
		requiredFields: []string{"depth_score", "communication_score", "coverage_score", "overall_score", "feedback"},
	},
}

// modeOrder is the order modes are presented in.
var modeOrder = []Mode{ModePronunciation, ModeCommunication, ModeProblemSolving, ModeDiscussion}

// ParseMode validates s as a Mode identifier.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.TrimSpace(s))
	if _, ok := variants[m]; !ok {
		ids := make([]string, len(modeOrder))
		for i, id := range modeOrder {
			ids[i] = string(id)
		}
		return "", fmt.Errorf("invalid mode %q, must be one of: %s", s, strings.Join(ids, ", "))
	}
	return m, nil
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	_, ok := variants[m]
	return ok
}

// Info returns the display metadata of m.
func (m Mode) Info() ModeInfo {
	if v, ok := variants[m]; ok {
		return v.info
	}
	return ModeInfo{ID: m, Title: string(m)}
}

// Modes lists the display metadata of every mode in presentation order.
func Modes() []ModeInfo {
	out := make([]ModeInfo, 0, len(modeOrder))
	for _, m := range modeOrder {
		out = append(out, variants[m].info)
	}
	return out
}

func (m Mode) variant() *variant {
	if v, ok := variants[m]; ok {
		return v
	}
	return variants[DefaultMode]
}

// QuestionPrompt builds the question-generation prompt for m.
func (m Mode) QuestionPrompt(resumeText, jobDescription string, count int) string {
	v := m.variant()
	var b strings.Builder
	b.WriteString("You are an expert interview coach. Based on this resume and job description, create tailored interview questions.\n\n")
	b.WriteString("Resume: ")
	b.WriteString(resumeText)
	b.WriteString("\nJob Description: ")
	b.WriteString(jobDescription)
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf(v.questionInstructions, count))
	b.WriteString("\n\nReturn VALID JSON:\n")
	b.WriteString(v.questionSchema)
	return b.String()
}

// EvaluationPrompt builds the answer-evaluation prompt for m.
func (m Mode) EvaluationPrompt(questionText, answerText string) string {
	v := m.variant()
	return v.evaluationIntro(questionText, answerText) + " Return VALID JSON:\n" + v.evaluationSchema
}
