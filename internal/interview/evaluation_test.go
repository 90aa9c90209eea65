package interview

import (
	"errors"
	"testing"

	"github.com/lshigami/hirewise/internal/apperror"
)

func TestDecodeEvaluation(t *testing.T) {
	tests := []struct {
		name    string
		mode    Mode
		body    string
		overall int
		wantErr bool
	}{
		{
			name:    "communication",
			mode:    ModeCommunication,
			body:    `{"structure_score":7,"relevance_score":8,"clarity_score":6,"overall_score":7,"feedback":"Use STAR.","suggested_answer":"..."}`,
			overall: 7,
		},
		{
			name:    "pronunciation",
			mode:    ModePronunciation,
			body:    `{"pronunciation_score":9,"clarity_score":8,"content_score":9,"overall_score":9,"feedback":"Clear."}`,
			overall: 9,
		},
		{
			name:    "problem solving with float and string scores",
			mode:    ModeProblemSolving,
			body:    `{"technical_score":6.6,"approach_score":"5","completeness_score":4,"overall_score":"5.4","feedback":"Think about edge cases."}`,
			overall: 5,
		},
		{
			name:    "discussion clamps out of range",
			mode:    ModeDiscussion,
			body:    `{"depth_score":12,"communication_score":0,"coverage_score":5,"overall_score":15,"feedback":"Cover caching.","key_points_missed":["cache"]}`,
			overall: 10,
		},
		{
			name:    "missing overall score",
			mode:    ModeCommunication,
			body:    `{"structure_score":7,"relevance_score":8,"clarity_score":6,"feedback":"x"}`,
			wantErr: true,
		},
		{
			name:    "score alias is not accepted",
			mode:    ModeCommunication,
			body:    `{"structure_score":7,"relevance_score":8,"clarity_score":6,"score":7,"feedback":"x"}`,
			wantErr: true,
		},
		{
			name:    "null feedback",
			mode:    ModeCommunication,
			body:    `{"structure_score":7,"relevance_score":8,"clarity_score":6,"overall_score":7,"feedback":null}`,
			wantErr: true,
		},
		{
			name:    "not json",
			mode:    ModeCommunication,
			body:    `Sure! Here is the evaluation`,
			wantErr: true,
		},
		{
			name:    "wrong score type",
			mode:    ModeCommunication,
			body:    `{"structure_score":"great","relevance_score":8,"clarity_score":6,"overall_score":7,"feedback":"x"}`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval, err := DecodeEvaluation(tt.mode, []byte(tt.body))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", eval)
				}
				if !errors.Is(err, apperror.ErrMalformedResponse) {
					t.Errorf("error %v does not wrap ErrMalformedResponse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if eval.Mode() != tt.mode {
				t.Errorf("Mode() = %s, want %s", eval.Mode(), tt.mode)
			}
			if eval.Overall() != tt.overall {
				t.Errorf("Overall() = %d, want %d", eval.Overall(), tt.overall)
			}
			for name, s := range eval.Scores() {
				if s < MinScore || s > MaxScore {
					t.Errorf("%s = %d outside %d-%d", name, s, MinScore, MaxScore)
				}
			}
		})
	}
}

func TestDecodeEvaluationInvalidMode(t *testing.T) {
	_, err := DecodeEvaluation("karaoke", []byte(`{}`))
	if !apperror.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
