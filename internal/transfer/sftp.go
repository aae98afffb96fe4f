package transfer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path"
	"strconv"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/joseph-ayodele/merchant-report/internal/common"
)

// SFTPUploader writes local files to an SFTP server over one session.
type SFTPUploader struct {
	conn   *ssh.Client
	client *sftp.Client
	logger *slog.Logger
}

// DialSFTP opens an SSH connection with password auth and starts an SFTP
// session on it. Without a known_hosts file the host key is not verified.
func DialSFTP(ctx context.Context, cfg common.SFTPConfig, logger *slog.Logger) (*SFTPUploader, error) {
	if logger == nil {
		logger = slog.Default()
	}

	hostKey := ssh.InsecureIgnoreHostKey()
	if cfg.KnownHosts != "" {
		cb, err := knownhosts.New(cfg.KnownHosts)
		if err != nil {
			return nil, fmt.Errorf("load known hosts: %w", err)
		}
		hostKey = cb
	}

	sshCfg := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.Password)},
		HostKeyCallback: hostKey,
		Timeout:         cfg.Timeout,
	}
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	dialer := &net.Dialer{Timeout: cfg.Timeout}
	raw, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w: %w", addr, common.ErrTransfer, err)
	}
	c, chans, reqs, err := ssh.NewClientConn(raw, addr, sshCfg)
	if err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ssh handshake %s: %w: %w", addr, common.ErrTransfer, err)
	}
	conn := ssh.NewClient(c, chans, reqs)

	client, err := sftp.NewClient(conn)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("start sftp session: %w: %w", common.ErrTransfer, err)
	}
	logger.Info("sftp session established", "addr", addr, "user", cfg.User)
	return &SFTPUploader{conn: conn, client: client, logger: logger}, nil
}

// Upload copies localPath to remotePath, creating missing remote directories.
func (u *SFTPUploader) Upload(ctx context.Context, localPath, remotePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := u.client.MkdirAll(path.Dir(remotePath)); err != nil {
		return fmt.Errorf("mkdir %s: %w", path.Dir(remotePath), err)
	}

	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", localPath, err)
	}
	defer func() { _ = src.Close() }()

	dst, err := u.client.Create(remotePath)
	if err != nil {
		return fmt.Errorf("create %s: %w", remotePath, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("copy to %s: %w", remotePath, err)
	}
	return dst.Close()
}

// Close ends the SFTP session and the SSH connection.
func (u *SFTPUploader) Close() error {
	err := u.client.Close()
	if cerr := u.conn.Close(); err == nil {
		err = cerr
	}
	return err
}

// CheckSession opens a session, reads the remote working directory and closes
// the session again.
func CheckSession(ctx context.Context, cfg common.SFTPConfig, logger *slog.Logger) (string, error) {
	if cfg.Host == "" || cfg.User == "" {
		return "", common.NewAppError("CONFIG_ERROR", "SFTP_HOST and SFTP_USER are required", common.ErrInvalidInput)
	}
	up, err := DialSFTP(ctx, cfg, logger)
	if err != nil {
		return "", err
	}
	wd, err := up.client.Getwd()
	if cerr := up.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("sftp session check: %w: %w", common.ErrTransfer, err)
	}
	return wd, nil
}
