package knowledge

import (
	"fmt"
	"strings"

	"github.com/ternarybob/doctrina/internal/models"
)

// EmptyQueryMessage is returned, without a remote call, when the query is
// empty or whitespace-only.
const EmptyQueryMessage = "Please provide a query to search the Strands Agent documentation."

// UnknownSourceLabel replaces a citation whose storage URI could not be
// resolved. Citations are never dropped from the Sources list.
const UnknownSourceLabel = "Unknown source"

// FormatResponse builds the three-section markdown response: Query,
// Answer, and (when citations exist) a numbered Sources list.
func FormatResponse(query string, result *models.RetrievalResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**Query**: %s\n\n**Answer**: %s", query, result.Answer))

	if len(result.Citations) > 0 {
		sb.WriteString("\n\n**Sources**:")
		for i, citation := range result.Citations {
			uri := citation.SourceURI
			if uri == "" {
				uri = UnknownSourceLabel
			}
			sb.WriteString(fmt.Sprintf("\n%d. %s", i+1, uri))
		}
	}

	return sb.String()
}
