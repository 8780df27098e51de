package validation

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/quizard-lambda/internal/config"
	"github.com/saulo-duarte/quizard-lambda/internal/query"
	"github.com/saulo-duarte/quizard-lambda/internal/schema"
)

type ctxKey int

const (
	queryKey ctxKey = iota
	bodyKey
)

// Query is the validated form of a request's query string and path params.
type Query struct {
	Filters query.Filters
	Many    bool
	LastID  *int64
	Limit   int
}

func (q Query) ID() (int64, bool) {
	id, ok := q.Filters["id"].(int64)
	return id, ok
}

func (q Query) Options() query.Options {
	return query.Options{
		Filters: q.Filters,
		LastID:  q.LastID,
		Limit:   q.Limit,
	}
}

func QueryFromContext(ctx context.Context) Query {
	if q, ok := ctx.Value(queryKey).(Query); ok {
		return q
	}
	return Query{Filters: query.Filters{}, Limit: query.DefaultLimit}
}

type argsConfig struct {
	defaultMany bool
	pathOnly    bool
	rename      map[string]string
}

type ArgsOption func(*argsConfig)

// DefaultMany makes collection routes paginate unless many=false is passed.
func DefaultMany() ArgsOption {
	return func(c *argsConfig) { c.defaultMany = true }
}

// PathOnly ignores the query string, as POST routes do.
func PathOnly() ArgsOption {
	return func(c *argsConfig) { c.pathOnly = true }
}

// RenameParam maps a path parameter onto a different schema key.
func RenameParam(param, field string) ArgsOption {
	return func(c *argsConfig) {
		if c.rename == nil {
			c.rename = map[string]string{}
		}
		c.rename[param] = field
	}
}

// Args coerces the query string and path params against the named read schema
// and stores the resulting Query in the request context.
func Args(schemaName string, opts ...ArgsOption) func(http.Handler) http.Handler {
	s := schema.MustLookup(schemaName)
	cfg := argsConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			values := url.Values{}
			if !cfg.pathOnly {
				values = r.URL.Query()
			}
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				for i, key := range rctx.URLParams.Keys {
					if key == "" || key == "*" {
						continue
					}
					if renamed, ok := cfg.rename[key]; ok {
						key = renamed
					}
					values.Set(key, strings.TrimSpace(rctx.URLParams.Values[i]))
				}
			}

			args, err := s.CoerceArgs(values)
			if err != nil {
				config.WithContext(r.Context()).WithError(err).Warn("Rejected query arguments")
				config.WriteError(w, r, err)
				return
			}

			q := Query{Filters: query.Filters{}, Many: cfg.defaultMany, Limit: query.DefaultLimit}
			for key, v := range args {
				switch key {
				case "many":
					q.Many = v.(bool)
				case "last_id":
					id := v.(int64)
					q.LastID = &id
				case "limit":
					q.Limit = int(v.(int64))
				default:
					q.Filters[key] = v
				}
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), queryKey, q)))
		})
	}
}
