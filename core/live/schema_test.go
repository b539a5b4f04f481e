package live

import "testing"

func TestNewFunctionDeclarationWithoutParameters(t *testing.T) {
	declaration := NewFunctionDeclaration("endQuiz", "Ends the current quiz session.", nil)

	if declaration.Name != "endQuiz" {
		t.Fatalf("expected declaration name endQuiz, got %q", declaration.Name)
	}
	if declaration.Parameters != nil {
		t.Fatalf("expected nil parameters for argument-free declaration, got %+v", declaration.Parameters)
	}
}

func TestNewFunctionDeclarationReflectsNestedSchema(t *testing.T) {
	type question struct {
		QuestionText       string   `json:"question_text" jsonschema:"description=The question text."`
		Options            []string `json:"options" jsonschema:"description=Four multiple-choice options."`
		CorrectAnswerIndex int      `json:"correct_answer_index"`
	}
	type params struct {
		Questions []question `json:"questions" jsonschema:"description=A list of quiz questions."`
	}

	declaration := NewFunctionDeclaration("startQuiz", "Starts a quiz.", params{})

	schema := declaration.Parameters
	if schema == nil || schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT parameter schema, got %+v", schema)
	}

	questions, ok := schema.Properties["questions"]
	if !ok || questions.Type != "ARRAY" {
		t.Fatalf("expected questions property of type ARRAY, got %+v", questions)
	}
	if questions.Description != "A list of quiz questions." {
		t.Fatalf("expected questions description from tag, got %q", questions.Description)
	}

	item := questions.Items
	if item == nil || item.Type != "OBJECT" {
		t.Fatalf("expected OBJECT array items, got %+v", item)
	}
	if got := item.Properties["correct_answer_index"].Type; got != "INTEGER" {
		t.Fatalf("expected INTEGER index property, got %q", got)
	}
	if got := item.Properties["options"].Items.Type; got != "STRING" {
		t.Fatalf("expected STRING option items, got %q", got)
	}
	if len(item.Required) != 3 {
		t.Fatalf("expected all three question fields required, got %v", item.Required)
	}
}
