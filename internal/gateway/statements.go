package gateway

import (
	"context"
	"fmt"
	"net/http"
)

// Statement is a binary statement document as produced by the backend.
type Statement struct {
	ContentType string
	Data        []byte
}

// DownloadStatement fetches the statement document for an account.
func (c *Client) DownloadStatement(ctx context.Context, token string, accountID int64) (Statement, error) {
	resp, err := c.send(ctx, "download statement", request{
		method: http.MethodGet,
		path:   fmt.Sprintf("/api/statements/account/%d", accountID),
		token:  token,
	})
	if err != nil {
		return Statement{}, err
	}
	contentType := resp.contentType
	if contentType == "" {
		contentType = "application/pdf"
	}
	return Statement{ContentType: contentType, Data: resp.body}, nil
}
