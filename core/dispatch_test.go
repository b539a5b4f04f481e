package session

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/maahirlabs/tutor-core/core/live"
)

func TestDecodeSetEmotion(t *testing.T) {
	invocation, err := decodeToolCall(live.FunctionCall{
		Name: "setEmotion",
		Args: json.RawMessage(`{"emotion": "HAPPY"}`),
	})
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	call, ok := invocation.(setEmotionCall)
	if !ok || call.emotion != EmotionHappy {
		t.Fatalf("unexpected invocation: %#v", invocation)
	}
}

func TestDecodeIgnoresUnknownEmotion(t *testing.T) {
	invocation, err := decodeToolCall(live.FunctionCall{
		Name: "setEmotion",
		Args: json.RawMessage(`{"emotion": "FURIOUS"}`),
	})
	if err != nil || invocation != nil {
		t.Fatalf("expected unknown emotion to be dropped, got %#v, %v", invocation, err)
	}
}

func TestDecodeMalformedArgsIsProtocolError(t *testing.T) {
	_, err := decodeToolCall(live.FunctionCall{
		Name: "startQuiz",
		Args: json.RawMessage(`{"questions": "not an array"}`),
	})
	if !errors.Is(err, ErrProtocol) {
		t.Fatalf("expected protocol error, got %v", err)
	}
}

func TestDecodeStartQuiz(t *testing.T) {
	invocation, err := decodeToolCall(live.FunctionCall{
		Name: "startQuiz",
		Args: json.RawMessage(`{"questions": [
			{"question_text": "પ્રશ્ન", "options": ["અ", "બ", "ક", "ડ"], "correct_answer_index": 2}
		]}`),
	})
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	call, ok := invocation.(startQuizCall)
	if !ok || len(call.questions) != 1 {
		t.Fatalf("unexpected invocation: %#v", invocation)
	}
	if call.questions[0].CorrectAnswerIndex != 2 || len(call.questions[0].Options) != 4 {
		t.Fatalf("unexpected question decoding: %+v", call.questions[0])
	}
}

func TestDecodeIgnoresEmptyQuiz(t *testing.T) {
	invocation, err := decodeToolCall(live.FunctionCall{
		Name: "startQuiz",
		Args: json.RawMessage(`{"questions": []}`),
	})
	if err != nil || invocation != nil {
		t.Fatalf("expected empty quiz to be dropped, got %#v, %v", invocation, err)
	}
}

func TestDecodeIgnoresUnknownNames(t *testing.T) {
	invocation, err := decodeToolCall(live.FunctionCall{Name: "selfDestruct"})
	if err != nil || invocation != nil {
		t.Fatalf("expected unknown name to be dropped, got %#v, %v", invocation, err)
	}
}

func TestToolDeclarations(t *testing.T) {
	declarations := toolDeclarations()
	if len(declarations) != 3 {
		t.Fatalf("expected three declarations, got %d", len(declarations))
	}

	byName := map[string]live.FunctionDeclaration{}
	for _, declaration := range declarations {
		byName[declaration.Name] = declaration
	}

	emotion, ok := byName["setEmotion"].Parameters.Properties["emotion"]
	if !ok || emotion.Description == "" {
		t.Fatalf("expected described emotion parameter, got %+v", byName["setEmotion"].Parameters)
	}
	if byName["startQuiz"].Parameters.Properties["questions"].Type != "ARRAY" {
		t.Fatalf("expected questions array parameter, got %+v", byName["startQuiz"].Parameters)
	}
	if byName["endQuiz"].Parameters != nil {
		t.Fatalf("expected endQuiz to take no parameters, got %+v", byName["endQuiz"].Parameters)
	}
}
