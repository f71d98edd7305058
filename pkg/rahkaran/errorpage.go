package rahkaran

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samvad-hq/rahkaran-client/pkg/httpclient"
)

const maxSummaryLen = 512

// summarizeBody turns an error response into a short message. IIS/WCF error
// pages are reduced to their title or text and JSON faults to their message.
func summarizeBody(body []byte, contentType string) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	if strings.Contains(strings.ToLower(contentType), "html") || bytes.HasPrefix(trimmed, []byte("<")) {
		if msg := summarizeHTML(trimmed); msg != "" {
			return truncate(msg)
		}
	}
	if trimmed[0] == '{' {
		if msg := faultMessage(trimmed); msg != "" {
			return truncate(msg)
		}
	}
	return truncate(string(trimmed))
}

func summarizeHTML(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	if title := collapseSpaces(doc.Find("title").First().Text()); title != "" {
		return title
	}
	for _, sel := range []string{"h1", "h2", "body"} {
		if text := collapseSpaces(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// faultMessage extracts the message of a WCF style JSON fault.
func faultMessage(body []byte) string {
	var fault map[string]any
	if err := json.Unmarshal(body, &fault); err != nil {
		return ""
	}
	for _, key := range []string{"Message", "message", "error", "Error"} {
		if s, ok := fault[key].(string); ok && strings.TrimSpace(s) != "" {
			return collapseSpaces(s)
		}
	}
	return ""
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string) string {
	return httpclient.Truncate(s, maxSummaryLen)
}
