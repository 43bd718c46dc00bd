package mcp

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"clockodo-mcp/internal/domain"
	"clockodo-mcp/internal/render"
)

// registerResources declares the read-only resources. Like the tools, every
// reader converts failures into informative text so no error escapes.
func (h *Handler) registerResources(s *server.MCPServer) {
	s.AddResourceTemplate(mcp.NewResourceTemplate(
		"entries://{period}",
		"Time Entries by Period",
		mcp.WithTemplateDescription("Your time entries for a period: today, yesterday, week or month."),
		mcp.WithTemplateMIMEType("text/plain"),
	), h.readEntries)

	s.AddResource(mcp.NewResource(
		"customers://all",
		"All Customers",
		mcp.WithResourceDescription("Every customer in the Clockodo account."),
		mcp.WithMIMEType("text/plain"),
	), h.readCustomers)

	s.AddResourceTemplate(mcp.NewResourceTemplate(
		"projects://{customer_name}",
		"Projects by Customer",
		mcp.WithTemplateDescription("Projects belonging to the named customer (partial match)."),
		mcp.WithTemplateMIMEType("text/plain"),
	), h.readProjects)

	s.AddResource(mcp.NewResource(
		"services://all",
		"All Services",
		mcp.WithResourceDescription("Every bookable service in the Clockodo account."),
		mcp.WithMIMEType("text/plain"),
	), h.readServices)

	s.AddResource(mcp.NewResource(
		"users://all",
		"All Users",
		mcp.WithResourceDescription("Every member of the Clockodo account."),
		mcp.WithMIMEType("text/plain"),
	), h.readUsers)
}

func textContents(uri, text string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: uri, MIMEType: "text/plain", Text: text},
	}
}

func (h *Handler) readEntries(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	period := strings.TrimPrefix(uri, "entries://")

	res, err := h.tracker.EntriesForPeriod(ctx, period)
	if err != nil {
		if apiErr, ok := domain.AsAPIError(err); ok && apiErr.Kind == domain.KindValidation {
			return textContents(uri, apiErr.Message), nil
		}
		return textContents(uri, resourceError("getting entries", err)), nil
	}
	if res.Fetched == 0 {
		return textContents(uri, "No time entries found for "+period), nil
	}
	if len(res.Entries) == 0 {
		return textContents(uri, "No time entries found for your user for "+period), nil
	}
	return textContents(uri, render.Entries(period, res.Entries)), nil
}

func (h *Handler) readCustomers(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	customers, err := h.client.GetCustomers(ctx)
	if err != nil {
		return textContents(uri, resourceError("getting customers", err)), nil
	}
	if len(customers) == 0 {
		return textContents(uri, "No customers found"), nil
	}
	return textContents(uri, render.Customers(customers)), nil
}

func (h *Handler) readProjects(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	name := strings.TrimPrefix(uri, "projects://")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}

	customer, _, err := h.resolve.Customer(ctx, name)
	if err != nil {
		return textContents(uri, resourceError("getting projects", err)), nil
	}
	if customer == nil {
		return textContents(uri, fmt.Sprintf("Customer '%s' not found", name)), nil
	}

	projects, err := h.client.GetProjects(ctx, &customer.ID)
	if err != nil {
		return textContents(uri, resourceError("getting projects", err)), nil
	}
	if len(projects) == 0 {
		return textContents(uri, "No projects found for "+customer.Name), nil
	}
	return textContents(uri, render.Projects(customer.Name, projects)), nil
}

func (h *Handler) readServices(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	services, err := h.client.GetServices(ctx)
	if err != nil {
		return textContents(uri, resourceError("getting services", err)), nil
	}
	if len(services) == 0 {
		return textContents(uri, "No services found"), nil
	}
	return textContents(uri, render.Services(services)), nil
}

func (h *Handler) readUsers(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	users, err := h.client.GetUsers(ctx)
	if err != nil {
		return textContents(uri, resourceError("getting users", err)), nil
	}
	if len(users) == 0 {
		return textContents(uri, "No users found"), nil
	}
	return textContents(uri, render.Users(users)), nil
}

func resourceError(action string, err error) string {
	return fmt.Sprintf("❌ Error %s: %v", action, err)
}
