// Package chat implements the conversational layer: a guardrail that filters
// out non-weather input, and two agent flavors backed by the OpenAI Responses
// API with function calling.
package chat

import (
	"context"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"
)

// TurnKind discriminates what the model produced in a turn.
type TurnKind int

const (
	// TurnText is a finished natural-language answer.
	TurnText TurnKind = iota
	// TurnToolCall is a request to execute a named tool and report back.
	TurnToolCall
)

// Turn is one model response, reduced to the two cases this system handles.
type Turn struct {
	Kind       TurnKind
	ResponseID string

	// Text is set for TurnText.
	Text string

	// ToolName, ToolArgs (raw JSON) and ToolCallID are set for TurnToolCall.
	ToolName   string
	ToolArgs   string
	ToolCallID string
}

// ToolDef declares a callable tool offered to the model.
type ToolDef struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ToolOutput feeds a tool's result back into the conversation.
type ToolOutput struct {
	CallID string
	Output string
}

// Request is a single call to the language model. Exactly one of Input or
// ToolOutput drives the call; PreviousResponseID resumes a stored thread.
type Request struct {
	Input              string
	Instructions       string
	PreviousResponseID string
	Store              bool
	Tools              []ToolDef
	ToolOutput         *ToolOutput
}

// Client is the language-model dependency. The production implementation
// talks to OpenAI; tests substitute a fake.
type Client interface {
	Respond(ctx context.Context, req Request) (Turn, error)
}

// OpenAIClient implements Client on the OpenAI Responses API.
type OpenAIClient struct {
	api   openai.Client
	model shared.ResponsesModel
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		api:   openai.NewClient(option.WithAPIKey(apiKey)),
		model: shared.ResponsesModel(model),
	}
}

func (c *OpenAIClient) Respond(ctx context.Context, req Request) (Turn, error) {
	params := responses.ResponseNewParams{
		Model: c.model,
		Store: openai.Bool(req.Store),
	}
	if req.Instructions != "" {
		params.Instructions = openai.String(req.Instructions)
	}
	if req.PreviousResponseID != "" {
		params.PreviousResponseID = openai.String(req.PreviousResponseID)
	}
	if req.ToolOutput != nil {
		params.Input = responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfFunctionCallOutput(req.ToolOutput.CallID, req.ToolOutput.Output),
			},
		}
	} else {
		params.Input = responses.ResponseNewParamsInputUnion{OfString: openai.String(req.Input)}
	}
	for _, t := range req.Tools {
		tool := responses.ToolParamOfFunction(t.Name, t.Parameters, true)
		if t.Description != "" && tool.OfFunction != nil {
			tool.OfFunction.Description = openai.String(t.Description)
		}
		params.Tools = append(params.Tools, tool)
	}

	resp, err := c.api.Responses.New(ctx, params)
	if err != nil {
		return Turn{}, err
	}

	for _, item := range resp.Output {
		if item.Type == "function_call" {
			call := item.AsFunctionCall()
			return Turn{
				Kind:       TurnToolCall,
				ResponseID: resp.ID,
				ToolName:   call.Name,
				ToolArgs:   call.Arguments,
				ToolCallID: call.CallID,
			}, nil
		}
	}

	return Turn{
		Kind:       TurnText,
		ResponseID: resp.ID,
		Text:       resp.OutputText(),
	}, nil
}
