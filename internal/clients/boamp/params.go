package boamp

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// The explore API refuses to page past this many records.
const maxResultsWindow = 10000

var ErrTooDeepPagination = errors.New("too deep pagination")

// SearchParameters describes one query against the BOAMP records endpoint.
// Departments, Text, Procedure and PublishedAfter become `where` clauses;
// results are always ordered by publication date, newest first.
type SearchParameters struct {
	Text           string
	Departments    []string
	Procedure      string
	PublishedAfter time.Time
	Limit          int
	Offset         int
}

func (s SearchParameters) Validate() error {

	if s.Offset < 0 {
		return fmt.Errorf("offset must be non-negative")
	}

	if s.Limit < 0 || s.Limit > 100 {
		return fmt.Errorf("limit must be between 0 and 100")
	}

	if s.Offset+s.Limit > maxResultsWindow {
		return ErrTooDeepPagination
	}

	return nil
}

func (s SearchParameters) ToUrlParams() url.Values {

	params := url.Values{}

	var where []string
	if len(s.Departments) > 0 {
		quoted := lo.Map(s.Departments, func(code string, _ int) string {
			return strconv.Quote(code)
		})
		where = append(where, fmt.Sprintf("code_departement in (%s)", strings.Join(quoted, ",")))
	}
	if s.Text != "" {
		where = append(where, fmt.Sprintf("search(objet, %s)", strconv.Quote(s.Text)))
	}
	if s.Procedure != "" {
		where = append(where, fmt.Sprintf("typeprocedure = %s", strconv.Quote(s.Procedure)))
	}
	if !s.PublishedAfter.IsZero() {
		where = append(where, fmt.Sprintf("dateparution >= date'%s'", s.PublishedAfter.Format("2006-01-02")))
	}
	if len(where) > 0 {
		params.Add("where", strings.Join(where, " and "))
	}

	params.Add("order_by", "dateparution desc")
	params.Add("limit", strconv.Itoa(s.Limit))
	params.Add("offset", strconv.Itoa(s.Offset))

	return params
}
