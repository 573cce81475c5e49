package tests

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

func decodeResponseBody[T any](resp *http.Response) (*T, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return &result, nil
}

func (s *APITestSuite) authorizedRequest(method, url string, body io.Reader, userID int) *http.Request {
	req, err := http.NewRequest(method, url, body)
	s.Require().NoError(err)

	token, err := s.tokenManager.GenerateToken(userID)
	s.Require().NoError(err)

	req.Header.Set("Authorization", "Bearer "+token)

	return req
}
