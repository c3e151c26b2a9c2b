// Package mcp provides the stdio MCP server exposing the cart to agent UIs.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/go-ports/gomarketplace/internal/buildinfo"
	"github.com/go-ports/gomarketplace/internal/cart"
	"github.com/go-ports/gomarketplace/internal/models"
	"github.com/go-ports/gomarketplace/internal/service"
)

const productsDescription = `List the products currently in the shopping cart, in the order they were added. Each item has id, title, image_url, price and quantity.`

const addDescription = `Add one unit of a product to the cart. If a product with the same id is already in the cart its quantity grows by one and its title, image_url and price are replaced by the values given here; otherwise it is appended with quantity 1.`

const incrementDescription = `Increase the quantity of a cart item by one. Unknown ids leave the cart unchanged.`

const decrementDescription = `Decrease the quantity of a cart item by one. The item is removed when its quantity reaches zero. Unknown ids leave the cart unchanged.`

// NewServer creates and registers all cart tools on a new MCP server.
// It is separate from Serve so tests can obtain a configured server without
// committing to the stdio transport.
func NewServer(svc *service.Service) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("gomarketplace-cart", buildinfo.Version)
	registerTools(s, svc)
	return s
}

// Serve starts the stdio MCP server for the cart at cartHome, blocking until
// stdin closes.
func Serve(ctx context.Context, cartHome string) error {
	svc, err := service.New(ctx, cartHome)
	if err != nil {
		return fmt.Errorf("mcp: init service: %w", err)
	}
	defer svc.Close()

	return mcpserver.ServeStdio(NewServer(svc))
}

// registerTools wires the four cart tools into the server.
func registerTools(s *mcpserver.MCPServer, svc *service.Service) {
	s.AddTool(mcp.NewTool("cart_products",
		mcp.WithDescription(productsDescription),
	), func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		st, err := svc.Cart(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return productsResult(st)
	})

	s.AddTool(mcp.NewTool("cart_add",
		mcp.WithDescription(addDescription),
		mcp.WithString("id",
			mcp.Description("Product id."),
			mcp.Required(),
		),
		mcp.WithString("title",
			mcp.Description("Product title."),
			mcp.Required(),
		),
		mcp.WithString("image_url",
			mcp.Description("Product image URL."),
			mcp.Required(),
		),
		mcp.WithNumber("price",
			mcp.Description("Unit price."),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleAdd(ctx, svc, req)
	})

	s.AddTool(mcp.NewTool("cart_increment",
		mcp.WithDescription(incrementDescription),
		mcp.WithString("id",
			mcp.Description("Id of the cart item."),
			mcp.Required(),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleMutation(ctx, svc, req, (*cart.Store).Increment)
	})

	s.AddTool(mcp.NewTool("cart_decrement",
		mcp.WithDescription(decrementDescription),
		mcp.WithString("id",
			mcp.Description("Id of the cart item."),
			mcp.Required(),
		),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleMutation(ctx, svc, req, (*cart.Store).Decrement)
	})
}

// ---------------------------------------------------------------------------
// Tool handlers
// ---------------------------------------------------------------------------

func handleAdd(ctx context.Context, svc *service.Service, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := svc.Cart(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	item := models.ProductInput{
		ID:       req.GetString("id", ""),
		Title:    req.GetString("title", ""),
		ImageURL: req.GetString("image_url", ""),
		Price:    models.PriceFromFloat(req.GetFloat("price", 0)),
	}
	if err := st.AddToCart(ctx, item); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return productsResult(st)
}

func handleMutation(
	ctx context.Context,
	svc *service.Service,
	req mcp.CallToolRequest,
	mutate func(*cart.Store, context.Context, string) error,
) (*mcp.CallToolResult, error) {
	st, err := svc.Cart(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := mutate(st, ctx, req.GetString("id", "")); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return productsResult(st)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func productsResult(st *cart.Store) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]any{
		"products": st.Products(),
	})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
