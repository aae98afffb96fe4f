package transfer

import (
	"context"
	"errors"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/joseph-ayodele/merchant-report/internal/common"
)

func hostPort(t *testing.T, addr string) (string, int) {
	t.Helper()
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatalf("split %s: %v", addr, err)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		t.Fatalf("port %s: %v", port, err)
	}
	return host, n
}

func TestCheckSessionRequiresHostAndUser(t *testing.T) {
	_, err := CheckSession(context.Background(), common.SFTPConfig{User: "ops"}, nil)
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestCheckSessionConnectionRefused(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	host, port := hostPort(t, lis.Addr().String())
	_ = lis.Close()

	cfg := common.SFTPConfig{Host: host, Port: port, User: "ops", Password: "x", Timeout: time.Second}
	if _, err := CheckSession(context.Background(), cfg, nil); !errors.Is(err, common.ErrTransfer) {
		t.Fatalf("expected transfer error, got %v", err)
	}
}

func TestCheckSessionHandshakeFailure(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer lis.Close()
	go func() {
		for {
			c, err := lis.Accept()
			if err != nil {
				return
			}
			_, _ = c.Write([]byte("not ssh\r\n"))
			_ = c.Close()
		}
	}()

	host, port := hostPort(t, lis.Addr().String())
	cfg := common.SFTPConfig{Host: host, Port: port, User: "ops", Password: "x", Timeout: time.Second}
	if _, err := CheckSession(context.Background(), cfg, nil); !errors.Is(err, common.ErrTransfer) {
		t.Fatalf("expected transfer error, got %v", err)
	}
}
