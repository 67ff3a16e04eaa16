// internal/app/gateway/directory/sourcematerial.go
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"
)

// IssueSource describes one bi-monthly meeting-workbook issue whose content
// is available upstream.
type IssueSource struct {
	IssueDate        string `json:"issueDate"`
	Language         string `json:"language"`
	ModifiedDateTime string `json:"modifiedDateTime"`
	URL              string `json:"url"`
}

// Issues are published every two months. The crawl probes forward from the
// current issue until the CDN stops answering 200; the cap bounds the crawl
// if the upstream misbehaves and never 404s.
const maxIssueProbes = 12

// How many of the newest issues get a detail fetch.
const maxIssueDetails = 4

// SourceMaterial crawls the CDN for current and upcoming issues in the
// given language, then verifies up to four issues in parallel. Detail
// fetches fail independently: a failed fetch contributes nothing and never
// aborts its siblings. Concurrent calls for the same language share one
// crawl.
func (c *Client) SourceMaterial(ctx context.Context, language string) ([]IssueSource, error) {
	v, err, _ := c.crawls.Do(language, func() (any, error) {
		return c.crawlIssues(ctx, language)
	})
	if err != nil {
		return nil, err
	}
	return v.([]IssueSource), nil
}

// issueProbe mirrors the CDN's publication lookup response; only the EPUB
// file entries are read.
type issueProbe struct {
	Files map[string]struct {
		EPUB []struct {
			File struct {
				URL              string `json:"url"`
				ModifiedDatetime string `json:"modifiedDatetime"`
			} `json:"file"`
		} `json:"EPUB"`
	} `json:"files"`
}

func (c *Client) crawlIssues(ctx context.Context, language string) ([]IssueSource, error) {
	year, month := currentIssue(time.Now())

	var found []IssueSource
	for attempt := 0; attempt < maxIssueProbes; attempt++ {
		issueDate := fmt.Sprintf("%d%02d", year, month)
		q := url.Values{
			"langwritten": {language},
			"pub":         {"mwb"},
			"fileformat":  {"epub"},
			"output":      {"json"},
			"issue":       {issueDate},
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cdnURL+"?"+q.Encode(), nil)
		if err != nil {
			return nil, err
		}
		res, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}

		if res.StatusCode != http.StatusOK {
			_, _ = io.Copy(io.Discard, res.Body)
			res.Body.Close()
			break
		}

		var probe issueProbe
		err = json.NewDecoder(res.Body).Decode(&probe)
		res.Body.Close()
		if err != nil {
			return nil, err
		}

		if files, ok := probe.Files[language]; ok && len(files.EPUB) > 0 {
			found = append(found, IssueSource{
				IssueDate:        issueDate,
				Language:         language,
				ModifiedDateTime: files.EPUB[0].File.ModifiedDatetime,
				URL:              files.EPUB[0].File.URL,
			})
		}

		month += 2
		if month == 13 {
			month = 1
			year++
		}
	}

	return c.fetchIssueDetails(ctx, found), nil
}

// fetchIssueDetails verifies issue content availability for up to four
// issues in parallel. Each fetch stands alone; a failure drops that issue
// from the merged result.
func (c *Client) fetchIssueDetails(ctx context.Context, issues []IssueSource) []IssueSource {
	if len(issues) > maxIssueDetails {
		issues = issues[:maxIssueDetails]
	}

	results := make([]IssueSource, len(issues))
	var wg sync.WaitGroup
	for i, issue := range issues {
		wg.Add(1)
		go func(i int, issue IssueSource) {
			defer wg.Done()
			if err := c.verifyIssue(ctx, issue); err != nil {
				c.log.Warn("issue detail fetch failed",
					zap.String("issue", issue.IssueDate),
					zap.String("language", issue.Language),
					zap.Error(err))
				return
			}
			results[i] = issue
		}(i, issue)
	}
	wg.Wait()

	merged := make([]IssueSource, 0, len(results))
	for _, r := range results {
		if r.IssueDate != "" {
			merged = append(merged, r)
		}
	}
	return merged
}

func (c *Client) verifyIssue(ctx context.Context, issue IssueSource) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, issue.URL, nil)
	if err != nil {
		return err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	return nil
}

// currentIssue computes the year and (odd) month of the issue covering the
// week that contains today. Weeks start on Monday; issues cover two months
// starting on odd months.
func currentIssue(now time.Time) (year, month int) {
	day := int(now.Weekday())
	diff := -day + 1
	if day == 0 {
		diff = -6
	}
	monday := now.AddDate(0, 0, diff)

	month = int(monday.Month())
	if month%2 == 0 {
		month--
	}
	return monday.Year(), month
}
