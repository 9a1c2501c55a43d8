package pipefy

import (
	"context"
	"fmt"
)

const activeCardsQuery = `
query GetActiveCards($phaseId: ID!, $pageSize: Int!, $after: String) {
  phase(id: $phaseId) {
    id
    name
    cards(first: $pageSize, after: $after) {
      pageInfo {
        hasNextPage
        endCursor
      }
      edges {
        node {
          id
          title
          created_at
          assignees {
            id
            name
            email
          }
          fields {
            name
            value
          }
        }
      }
    }
  }
}`

type cardsPageData struct {
	Phase *struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Cards struct {
			PageInfo struct {
				HasNextPage bool   `json:"hasNextPage"`
				EndCursor   string `json:"endCursor"`
			} `json:"pageInfo"`
			Edges []struct {
				Node Card `json:"node"`
			} `json:"edges"`
		} `json:"cards"`
	} `json:"phase"`
}

// FetchPhaseCardsPage fetches one page of cards for a phase. after is the
// cursor from the previous page, "" for the first page. Returns the page,
// whether more pages exist and the cursor to continue from.
func (c *Client) FetchPhaseCardsPage(ctx context.Context, phaseID string, pageSize int, after string) ([]Card, bool, string, error) {
	vars := map[string]any{
		"phaseId":  phaseID,
		"pageSize": pageSize,
	}
	if after != "" {
		vars["after"] = after
	}

	var data cardsPageData
	if err := c.CallGraphQL(ctx, activeCardsQuery, vars, &data); err != nil {
		return nil, false, "", err
	}
	if data.Phase == nil {
		return nil, false, "", fmt.Errorf("pipefy: phase %s not found", phaseID)
	}

	conn := data.Phase.Cards
	cards := make([]Card, 0, len(conn.Edges))
	for _, e := range conn.Edges {
		cards = append(cards, e.Node)
	}
	return cards, conn.PageInfo.HasNextPage, conn.PageInfo.EndCursor, nil
}

// FetchPhaseCards walks the cursor until the connection is exhausted and
// returns the full card set for the phase.
func (c *Client) FetchPhaseCards(ctx context.Context, phaseID string, pageSize int) ([]Card, error) {
	var all []Card
	after := ""
	for page := 1; ; page++ {
		cards, hasNext, cursor, err := c.FetchPhaseCardsPage(ctx, phaseID, pageSize, after)
		if err != nil {
			return nil, fmt.Errorf("pipefy: fetch cards page %d: %w", page, err)
		}
		c.Log.Infow("fetched cards page", "page", page, "cards", len(cards))
		all = append(all, cards...)

		if !hasNext || cursor == "" {
			break
		}
		after = cursor
	}
	c.Log.Infow("card harvest complete", "total", len(all))
	return all, nil
}
