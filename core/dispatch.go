package session

import (
	"encoding/json"
	"fmt"

	"github.com/maahirlabs/tutor-core/core/live"
)

// toolInvocation is the decoded form of one model-issued function
// call. Decoding validates eagerly so downstream handlers only ever
// see well-formed invocations.
type toolInvocation interface{ isToolInvocation() }

type setEmotionCall struct{ emotion Emotion }

type startQuizCall struct{ questions []QuizQuestion }

type endQuizCall struct{}

func (setEmotionCall) isToolInvocation() {}
func (startQuizCall) isToolInvocation()  {}
func (endQuizCall) isToolInvocation()    {}

type setEmotionArgs struct {
	Emotion string `json:"emotion"`
}

type startQuizArgs struct {
	Questions []QuizQuestion `json:"questions" jsonschema:"description=A list of quiz questions."`
}

// decodeToolCall turns one wire function call into a validated
// invocation. Unknown names, unrecognized emotion values and empty
// quizzes decode to nil without error and are dropped; malformed
// arguments on a known name are a protocol error (still non-fatal,
// the caller logs and moves on).
func decodeToolCall(call live.FunctionCall) (toolInvocation, error) {
	switch call.Name {
	case "setEmotion":
		var args setEmotionArgs
		if err := json.Unmarshal(call.Args, &args); err != nil {
			return nil, fmt.Errorf("%w: malformed setEmotion arguments: %v", ErrProtocol, err)
		}
		emotion, ok := parseEmotion(args.Emotion)
		if !ok {
			return nil, nil
		}
		return setEmotionCall{emotion: emotion}, nil

	case "startQuiz":
		var args startQuizArgs
		if err := json.Unmarshal(call.Args, &args); err != nil {
			return nil, fmt.Errorf("%w: malformed startQuiz arguments: %v", ErrProtocol, err)
		}
		if len(args.Questions) == 0 {
			return nil, nil
		}
		return startQuizCall{questions: args.Questions}, nil

	case "endQuiz":
		return endQuizCall{}, nil
	}

	return nil, nil
}

// toolDeclarations builds the three function declarations registered
// with the transport at session setup.
func toolDeclarations() []live.FunctionDeclaration {
	setEmotion := live.NewFunctionDeclaration(
		"setEmotion",
		"Sets the current emotion of the assistant to reflect the tone of the response.",
		setEmotionArgs{},
	)
	// Struct tags split on commas, so this description is set directly.
	if property, ok := setEmotion.Parameters.Properties["emotion"]; ok {
		property.Description = "The emotion to express. Can be one of: 'NEUTRAL', 'HAPPY', 'EXCITED'."
	}

	return []live.FunctionDeclaration{
		setEmotion,
		live.NewFunctionDeclaration(
			"startQuiz",
			"Starts a quiz for the user with the provided questions.",
			startQuizArgs{},
		),
		live.NewFunctionDeclaration(
			"endQuiz",
			"Ends the current quiz session.",
			nil,
		),
	}
}
