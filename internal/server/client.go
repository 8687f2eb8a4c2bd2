package server

import (
	"context"
	"fmt"

	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Reply is a decoded response message.
type Reply struct {
	Output      string
	OK          bool
	Diagnostics []string
	BuildID     string
}

type Client struct {
	conn   *grpc.ClientConn
	schema *Schema
	owned  bool
}

// Dial connects to a compile server at target.
func Dial(target string) (*Client, error) {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", target, err)
	}
	c, err := NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	c.owned = true
	return c, nil
}

// NewClient uses an existing connection; Close leaves it open.
func NewClient(conn *grpc.ClientConn) (*Client, error) {
	schema, err := LoadSchema()
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, schema: schema}, nil
}

func (c *Client) Close() error {
	if c.owned {
		return c.conn.Close()
	}
	return nil
}

func (c *Client) Compile(ctx context.Context, source, file, emit string) (*Reply, error) {
	req := dynamic.NewMessage(c.schema.Compile.GetInputType())
	req.SetFieldByName("source", source)
	req.SetFieldByName("file", file)
	req.SetFieldByName("emit", emit)

	resp := dynamic.NewMessage(c.schema.Compile.GetOutputType())
	if err := c.conn.Invoke(ctx, CompileMethod, req, resp); err != nil {
		return nil, fmt.Errorf("RPC failed: %w", err)
	}

	r := &Reply{}
	r.Output, _ = resp.GetFieldByName("output").(string)
	r.OK, _ = resp.GetFieldByName("ok").(bool)
	r.BuildID, _ = resp.GetFieldByName("build_id").(string)
	if diags, ok := resp.GetFieldByName("diagnostics").([]interface{}); ok {
		for _, d := range diags {
			r.Diagnostics = append(r.Diagnostics, d.(string))
		}
	}
	return r, nil
}
