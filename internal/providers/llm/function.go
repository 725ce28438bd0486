package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sandevgo/haven/internal/core"
	"github.com/sandevgo/haven/pkg/log"
	"github.com/sandevgo/haven/pkg/retry"
)

// FunctionClient calls the hosted analysis function, which runs the prompts
// server-side and answers with a success flag plus the task's result field.
type FunctionClient struct {
	baseProvider
	retrier *retry.Retrier
}

func NewFunctionClient(url, token string, retrier *retry.Retrier) *FunctionClient {
	if retrier == nil {
		retrier = retry.NewDefaultRetrier()
	}
	return &FunctionClient{
		baseProvider: newBaseProvider(url, token, ""),
		retrier:      retrier,
	}
}

type functionResponse struct {
	Success             bool               `json:"success"`
	Error               string             `json:"error,omitempty"`
	Insights            *[]core.RawInsight `json:"insights,omitempty"`
	Summary             *string            `json:"summary,omitempty"`
	ConsolidatedSummary *string            `json:"consolidated_summary,omitempty"`
}

func (f *FunctionClient) Do(ctx context.Context, req core.LLMRequest) (core.LLMResponse, error) {
	if !knownTask(req.Task) {
		return core.LLMResponse{}, fmt.Errorf("%w: %s", core.ErrUnknownTask, req.Task)
	}

	var out core.LLMResponse
	err := f.retrier.Do(ctx, func() error {
		resp, err := f.call(ctx, req)
		if err != nil {
			log.FromCtx(ctx).Debug().Err(err).Str("task", string(req.Task)).Msg("analysis function call failed")
			return classify(err)
		}
		out = resp
		return nil
	})
	if err != nil {
		return core.LLMResponse{}, fmt.Errorf("%w: %w", core.ErrLLMFailed, err)
	}
	return out, nil
}

func (f *FunctionClient) call(ctx context.Context, req core.LLMRequest) (core.LLMResponse, error) {
	headers := make(map[string]string)
	if f.apiKey != "" {
		headers["Authorization"] = "Bearer " + f.apiKey
	}

	resp, err := f.doRequest(ctx, http.MethodPost, "", req, headers)
	if err != nil {
		return core.LLMResponse{}, err
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return core.LLMResponse{}, err
	}
	return decodeFunctionResponse(req.Task, data)
}

func decodeFunctionResponse(task core.Task, data []byte) (core.LLMResponse, error) {
	var fr functionResponse
	if err := json.Unmarshal(data, &fr); err != nil {
		return core.LLMResponse{}, fmt.Errorf("%w: decode: %v", core.ErrMalformedResponse, err)
	}
	if !fr.Success {
		return core.LLMResponse{}, fmt.Errorf("%w: function reported failure: %s", core.ErrMalformedResponse, fr.Error)
	}

	var out core.LLMResponse
	switch task {
	case core.TaskExtractInsights:
		if fr.Insights == nil {
			return out, fmt.Errorf("%w: missing insights", core.ErrMalformedResponse)
		}
		out.Insights = *fr.Insights
	case core.TaskGenerateSummary:
		if fr.Summary == nil {
			return out, fmt.Errorf("%w: missing summary", core.ErrMalformedResponse)
		}
		out.Summary = *fr.Summary
	case core.TaskConsolidateSummaries:
		if fr.ConsolidatedSummary == nil {
			return out, fmt.Errorf("%w: missing consolidated_summary", core.ErrMalformedResponse)
		}
		out.ConsolidatedSummary = *fr.ConsolidatedSummary
	}
	return out, nil
}

func knownTask(t core.Task) bool {
	switch t {
	case core.TaskExtractInsights, core.TaskGenerateSummary, core.TaskConsolidateSummaries:
		return true
	}
	return false
}
