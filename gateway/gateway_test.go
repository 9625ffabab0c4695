package gateway_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/auralabs/aura-go-sdk/gateway"
)

func dialTestServer(t *testing.T, handler gateway.Handler) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(gateway.NewServer(handler))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial gateway: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestServer_ChatRoundTrip(t *testing.T) {
	conn := dialTestServer(t, func(ctx context.Context, message string) (string, error) {
		return "echo: " + message, nil
	})

	if err := conn.WriteJSON(gateway.Envelope{Type: gateway.TypeChat, Message: "hello"}); err != nil {
		t.Fatalf("Failed to send frame: %v", err)
	}

	var reply gateway.Envelope
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("Failed to read reply: %v", err)
	}
	if reply.Type != gateway.TypeChatResponse {
		t.Errorf("Reply type = %q, want chat_response", reply.Type)
	}
	if reply.Message != "echo: hello" {
		t.Errorf("Reply message = %q, want echo: hello", reply.Message)
	}
	if reply.Timestamp == "" {
		t.Error("Reply missing timestamp")
	}
}

func TestServer_InvalidJSONKeepsConnection(t *testing.T) {
	conn := dialTestServer(t, func(ctx context.Context, message string) (string, error) {
		return "ok", nil
	})

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("Failed to send frame: %v", err)
	}

	var reply gateway.Envelope
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("Failed to read error reply: %v", err)
	}
	if reply.Type != gateway.TypeError {
		t.Errorf("Reply type = %q, want error", reply.Type)
	}

	// The connection survives the bad frame.
	if err := conn.WriteJSON(gateway.Envelope{Type: gateway.TypeChat, Message: "still here"}); err != nil {
		t.Fatalf("Failed to send after bad frame: %v", err)
	}
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("Failed to read after bad frame: %v", err)
	}
	if reply.Type != gateway.TypeChatResponse || reply.Message != "ok" {
		t.Errorf("Reply = %+v, want chat_response ok", reply)
	}
}

func TestServer_UnsupportedType(t *testing.T) {
	conn := dialTestServer(t, func(ctx context.Context, message string) (string, error) {
		t.Error("Handler called for an unsupported frame type")
		return "", nil
	})

	if err := conn.WriteJSON(gateway.Envelope{Type: "ping"}); err != nil {
		t.Fatalf("Failed to send frame: %v", err)
	}

	var reply gateway.Envelope
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("Failed to read reply: %v", err)
	}
	if reply.Type != gateway.TypeError || !strings.Contains(reply.Message, "ping") {
		t.Errorf("Reply = %+v, want error naming the type", reply)
	}
}

func TestServer_HandlerError(t *testing.T) {
	conn := dialTestServer(t, func(ctx context.Context, message string) (string, error) {
		return "", errors.New("engine exploded")
	})

	if err := conn.WriteJSON(gateway.Envelope{Type: gateway.TypeChat, Message: "hi"}); err != nil {
		t.Fatalf("Failed to send frame: %v", err)
	}

	var reply gateway.Envelope
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("Failed to read reply: %v", err)
	}
	if reply.Type != gateway.TypeError {
		t.Errorf("Reply type = %q, want error", reply.Type)
	}
	// Internal details stay out of the wire error.
	if strings.Contains(reply.Message, "exploded") {
		t.Errorf("Reply leaked handler error: %q", reply.Message)
	}
}

func TestServer_SequentialMessages(t *testing.T) {
	conn := dialTestServer(t, func(ctx context.Context, message string) (string, error) {
		return message, nil
	})

	for _, msg := range []string{"one", "two", "three"} {
		if err := conn.WriteJSON(gateway.Envelope{Type: gateway.TypeChat, Message: msg}); err != nil {
			t.Fatalf("Failed to send %q: %v", msg, err)
		}
	}
	for _, want := range []string{"one", "two", "three"} {
		var reply gateway.Envelope
		if err := conn.ReadJSON(&reply); err != nil {
			t.Fatalf("Failed to read reply: %v", err)
		}
		if reply.Message != want {
			t.Errorf("Reply = %q, want %q (in-order replies)", reply.Message, want)
		}
	}
}
