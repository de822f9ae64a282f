package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

// resourceManagerURL is the endpoint used to resolve a project id to its
// number. Overridden in tests.
var resourceManagerURL = "https://cloudresourcemanager.googleapis.com/v1/projects/"

// ProjectNumber resolves a project identifier to the numeric project
// number the CVS API addresses projects by. All-digit input is already a
// number and passes through; resolution needs
// resourcemanager.projects.get on the project.
func ProjectNumber(ctx context.Context, ts oauth2.TokenSource, project string) (string, error) {
	if project != "" && allDigits(project) {
		return project, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resourceManagerURL+project, nil)
	if err != nil {
		return "", err
	}
	resp, err := oauth2.NewClient(ctx, ts).Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("auth: cannot resolve project %q to a project number (status %d)", project, resp.StatusCode)
	}

	var pr struct {
		ProjectNumber string `json:"projectNumber"`
	}
	if err := json.Unmarshal(body, &pr); err != nil {
		return "", err
	}
	if pr.ProjectNumber == "" {
		return "", fmt.Errorf("auth: project %q has no project number", project)
	}
	return pr.ProjectNumber, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
