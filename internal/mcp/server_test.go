// Tests wire the real MCP server in-process via the mcp-go in-process
// transport, backed by a fresh service.Service rooted at a temporary directory.
package mcp_test

import (
	"context"
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/go-ports/gomarketplace/internal/checkers"
	internalmcp "github.com/go-ports/gomarketplace/internal/mcp"
	"github.com/go-ports/gomarketplace/internal/service"
	"github.com/go-ports/gomarketplace/internal/storage"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// newMCPClient creates an in-process MCP client backed by a fresh service
// rooted at home. The client is started and initialized before it is
// returned; cleanup is registered on c automatically.
func newMCPClient(c *qt.C, home string) *mcpclient.Client {
	c.TB.Helper()

	svc, err := service.New(context.Background(), home)
	c.Assert(err, qt.IsNil)
	return newMCPClientFor(c, svc)
}

// newMCPClientFor is like newMCPClient but serves the given service. The
// service is closed via c's cleanup.
func newMCPClientFor(c *qt.C, svc *service.Service) *mcpclient.Client {
	c.TB.Helper()
	c.TB.Cleanup(func() { _ = svc.Close() })

	cl, err := mcpclient.NewInProcessClient(internalmcp.NewServer(svc))
	c.Assert(err, qt.IsNil)
	c.TB.Cleanup(func() { _ = cl.Close() })

	c.Assert(cl.Start(context.Background()), qt.IsNil)

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "cart-test", Version: "0.0.1"}
	_, err = cl.Initialize(context.Background(), initReq)
	c.Assert(err, qt.IsNil)

	return cl
}

// callTool invokes the named MCP tool and returns the text of the first
// content item together with the IsError flag.
func callTool(c *qt.C, cl *mcpclient.Client, name string, args map[string]any) (string, bool) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := cl.CallTool(context.Background(), req)
	c.Assert(err, qt.IsNil)
	c.Assert(result.Content, qt.HasLen, 1)

	tc, ok := mcp.AsTextContent(result.Content[0])
	c.Assert(ok, qt.IsTrue)

	return tc.Text, result.IsError
}

func addArgs(id string) map[string]any {
	return map[string]any{
		"id":        id,
		"title":     "title " + id,
		"image_url": "https://img.example/" + id + ".png",
		"price":     19.9,
	}
}

// ---------------------------------------------------------------------------
// ListTools
// ---------------------------------------------------------------------------

func TestMCPListTools_HappyPath(t *testing.T) {
	c := qt.New(t)
	cl := newMCPClient(c, t.TempDir())

	result, err := cl.ListTools(context.Background(), mcp.ListToolsRequest{})
	c.Assert(err, qt.IsNil)
	c.Assert(result.Tools, qt.HasLen, 4)

	names := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		names[i] = tool.Name
	}
	c.Assert(names, qt.Contains, "cart_products")
	c.Assert(names, qt.Contains, "cart_add")
	c.Assert(names, qt.Contains, "cart_increment")
	c.Assert(names, qt.Contains, "cart_decrement")
}

// ---------------------------------------------------------------------------
// Tools
// ---------------------------------------------------------------------------

func TestMCPCartProducts_Empty(t *testing.T) {
	c := qt.New(t)
	cl := newMCPClient(c, t.TempDir())

	text, isErr := callTool(c, cl, "cart_products", map[string]any{})
	c.Assert(isErr, qt.IsFalse)
	c.Assert(text, qt.Equals, `{"products":[]}`)
}

func TestMCPCartAdd_HappyPath(t *testing.T) {
	c := qt.New(t)
	cl := newMCPClient(c, t.TempDir())

	text, isErr := callTool(c, cl, "cart_add", addArgs("a"))
	c.Assert(isErr, qt.IsFalse)
	c.Assert(text, checkers.JSONPathEquals("$.products[0].id"), "a")
	c.Assert(text, checkers.JSONPathEquals("$.products[0].image_url"), "https://img.example/a.png")
	c.Assert(text, checkers.JSONPathEquals("$.products[0].price"), 19.9)
	c.Assert(text, checkers.JSONPathEquals("$.products[0].quantity"), 1)

	text, _ = callTool(c, cl, "cart_add", addArgs("a"))
	c.Assert(text, checkers.JSONPathEquals("$.products[0].quantity"), 2)

	text, _ = callTool(c, cl, "cart_add", addArgs("b"))
	c.Assert(text, checkers.JSONPathEquals("$.products[*].id"), []string{"a", "b"})
}

func TestMCPIncrementDecrement_HappyPath(t *testing.T) {
	c := qt.New(t)
	cl := newMCPClient(c, t.TempDir())

	callTool(c, cl, "cart_add", addArgs("a"))

	text, isErr := callTool(c, cl, "cart_increment", map[string]any{"id": "a"})
	c.Assert(isErr, qt.IsFalse)
	c.Assert(text, checkers.JSONPathEquals("$.products[0].quantity"), 2)

	text, _ = callTool(c, cl, "cart_decrement", map[string]any{"id": "a"})
	c.Assert(text, checkers.JSONPathEquals("$.products[0].quantity"), 1)

	text, _ = callTool(c, cl, "cart_decrement", map[string]any{"id": "a"})
	c.Assert(text, qt.Equals, `{"products":[]}`)

	text, _ = callTool(c, cl, "cart_increment", map[string]any{"id": "x"})
	c.Assert(text, qt.Equals, `{"products":[]}`)
}

func TestMCPCart_PersistsAcrossServers(t *testing.T) {
	c := qt.New(t)
	home := t.TempDir()

	c.Run("first server adds", func(c *qt.C) {
		cl := newMCPClient(c, home)
		callTool(c, cl, "cart_add", addArgs("a"))
	})

	c.Run("second server sees the item", func(c *qt.C) {
		cl := newMCPClient(c, home)
		text, _ := callTool(c, cl, "cart_products", map[string]any{})
		c.Assert(text, checkers.JSONPathEquals("$.products[0].id"), "a")
		c.Assert(text, checkers.JSONPathEquals("$.products[0].quantity"), 1)
	})
}

// readOnlyStorage loads normally but rejects every write.
type readOnlyStorage struct {
	*storage.Memory
}

func (readOnlyStorage) Set(context.Context, string, string) error {
	return errors.New("read-only file system")
}

func TestMCPCart_StorageFailureIsToolError(t *testing.T) {
	c := qt.New(t)

	svc := service.NewWithStorage(context.Background(), t.TempDir(), nil, readOnlyStorage{Memory: storage.NewMemory()})
	cl := newMCPClientFor(c, svc)

	text, isErr := callTool(c, cl, "cart_add", addArgs("a"))
	c.Assert(isErr, qt.IsTrue)
	c.Assert(text, qt.Equals, "cart: addToCart: read-only file system")

	text, isErr = callTool(c, cl, "cart_increment", map[string]any{"id": "a"})
	c.Assert(isErr, qt.IsTrue)
	c.Assert(text, qt.Equals, "cart: increment: read-only file system")

	text, isErr = callTool(c, cl, "cart_decrement", map[string]any{"id": "a"})
	c.Assert(isErr, qt.IsTrue)
	c.Assert(text, qt.Equals, "cart: decrement: read-only file system")

	// Reads still succeed and reflect the in-memory state.
	text, isErr = callTool(c, cl, "cart_products", map[string]any{})
	c.Assert(isErr, qt.IsFalse)
	c.Assert(text, checkers.JSONPathEquals("$.products[0].id"), "a")
	c.Assert(text, checkers.JSONPathEquals("$.products[0].quantity"), 1)
}
