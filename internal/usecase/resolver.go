package usecase

import (
	"context"
	"strings"

	"clockodo-mcp/internal/domain"
	"clockodo-mcp/internal/ports"
)

// Match is a resolved name: the remote ID plus the full remote name.
type Match struct {
	ID   int64
	Name string
}

// Resolver maps user-supplied free-text names onto remote resource IDs by
// case-insensitive substring matching against freshly fetched lists. The
// first match in remote order wins; ambiguity is not an error.
type Resolver struct {
	Client ports.TimeTracker
}

// maxSuggestions caps the candidate names offered on a failed lookup.
const maxSuggestions = 5

// Customer resolves a customer name. A miss returns a nil match plus up to
// five available names for a "did you mean" message; only fetch failures
// produce an error.
func (r *Resolver) Customer(ctx context.Context, name string) (*Match, []string, error) {
	customers, err := r.Client.GetCustomers(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, c := range customers {
		if containsFold(c.Name, name) {
			return &Match{ID: c.ID, Name: c.Name}, nil, nil
		}
	}
	return nil, customerNames(customers), nil
}

// Project resolves a project name among the given customer's projects only.
func (r *Resolver) Project(ctx context.Context, customerID int64, name string) (*Match, []string, error) {
	projects, err := r.Client.GetProjects(ctx, &customerID)
	if err != nil {
		return nil, nil, err
	}
	suggestions := make([]string, 0, maxSuggestions)
	for _, p := range projects {
		if containsFold(p.Name, name) {
			return &Match{ID: p.ID, Name: p.Name}, nil, nil
		}
		if len(suggestions) < maxSuggestions {
			suggestions = append(suggestions, p.Name)
		}
	}
	return nil, suggestions, nil
}

// Service resolves a service name.
func (r *Resolver) Service(ctx context.Context, name string) (*Match, []string, error) {
	services, err := r.Client.GetServices(ctx)
	if err != nil {
		return nil, nil, err
	}
	suggestions := make([]string, 0, maxSuggestions)
	for _, s := range services {
		if containsFold(s.Name, name) {
			return &Match{ID: s.ID, Name: s.Name}, nil, nil
		}
		if len(suggestions) < maxSuggestions {
			suggestions = append(suggestions, s.Name)
		}
	}
	return nil, suggestions, nil
}

func customerNames(customers []domain.Customer) []string {
	out := make([]string, 0, maxSuggestions)
	for _, c := range customers {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, c.Name)
	}
	return out
}

func containsFold(candidate, query string) bool {
	return strings.Contains(strings.ToLower(candidate), strings.ToLower(query))
}
