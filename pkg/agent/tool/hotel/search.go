package hotel

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/stayops-lab/xenia/pkg/agent/tool"
)

const (
	defaultSearchLimit    = 5
	defaultSearchMinScore = 0.8
)

// searchRequestsTool finds past maintenance requests similar to a query
type searchRequestsTool struct {
	svc MaintenanceService
}

func (t *searchRequestsTool) Spec() gollem.ToolSpec {
	return gollem.ToolSpec{
		Name:        "maintenance__search_requests",
		Description: "Search past maintenance requests by semantic similarity to a description, e.g. to check whether a problem was already reported",
		Parameters: map[string]*gollem.Parameter{
			"query": {
				Type:        gollem.TypeString,
				Description: "Description of the problem to search for",
				Required:    true,
			},
			"limit": {
				Type:        gollem.TypeInteger,
				Description: "Maximum number of results to return (default: 5)",
				Required:    false,
			},
		},
	}
}

func (t *searchRequestsTool) Run(ctx context.Context, args map[string]any) (map[string]any, error) {
	query, _ := args["query"].(string)
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	tool.Update(ctx, fmt.Sprintf("Searching maintenance requests: %s", query))

	limit := defaultSearchLimit
	if v, ok := extractInt64(args, "limit"); ok && v > 0 {
		limit = int(v)
	}

	results, err := t.svc.SearchSimilar(ctx, query, limit, defaultSearchMinScore)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search maintenance requests",
			goerr.V("query", query),
			goerr.V("limit", limit),
		)
	}

	items := make([]map[string]any, len(results))
	for i, r := range results {
		items[i] = map[string]any{
			"request_id": string(r.Request.ID),
			"hotel_name": r.Request.HotelName,
			"details":    r.Request.Details,
			"score":      r.Score,
		}
	}
	return map[string]any{"requests": items}, nil
}
