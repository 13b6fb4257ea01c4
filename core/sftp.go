package core

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/xerrors"
)

var log = logging.Logger("sftp")

const DefaultSftpPort = 22

// ConnectionParams are supplied by the caller on every request and live only
// for the duration of that request.
type ConnectionParams struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (p ConnectionParams) Addr() string {
	port := p.Port
	if port == 0 {
		port = DefaultSftpPort
	}
	return fmt.Sprintf("%s:%d", p.Host, port)
}

// Entry is one remote directory entry as reported by the server.
type Entry struct {
	Name    string
	Size    int64
	ModTime time.Time
	Mode    os.FileMode
}

func (e Entry) IsDir() bool {
	return e.Mode.IsDir()
}

func (e Entry) IsRegular() bool {
	return e.Mode.IsRegular()
}

// Session is a narrow view over one live SFTP connection. Handlers only ever
// see this interface, never the underlying ssh or sftp client types.
type Session interface {
	List(path string) ([]Entry, error)
	Get(path string) ([]byte, error)
	Close() error
}

// Dialer opens a new Session per call. retries bounds reconnect attempts on
// top of the first one; only the connection test endpoint passes a non-zero
// value.
type Dialer interface {
	Connect(params ConnectionParams, retries int) (Session, error)
}

type SSHDialer struct {
	ConnectTimeout time.Duration
}

func (d *SSHDialer) Connect(params ConnectionParams, retries int) (Session, error) {

	sshConfig := &ssh.ClientConfig{
		User: params.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(params.Password),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         d.ConnectTimeout,
	}

	var conn *ssh.Client
	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		conn, err = ssh.Dial("tcp", params.Addr(), sshConfig)
		if err == nil {
			break
		}
		log.Debugf("dial %s attempt %d failed: %s", params.Addr(), attempt+1, err)
	}
	if err != nil {
		return nil, xerrors.Errorf("failed to connect to %s: %w", params.Addr(), err)
	}

	client, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, xerrors.Errorf("failed to start sftp session on %s: %w", params.Addr(), err)
	}

	return &sshSession{conn: conn, client: client}, nil
}

type sshSession struct {
	conn   *ssh.Client
	client *sftp.Client
}

func (s *sshSession) List(path string) ([]Entry, error) {
	infos, err := s.client.ReadDir(path)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, Entry{
			Name:    info.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Mode:    info.Mode(),
		})
	}
	return entries, nil
}

func (s *sshSession) Get(path string) ([]byte, error) {
	file, err := s.client.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var buffer bytes.Buffer
	if _, err := io.Copy(&buffer, file); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Close tears down the sftp session and the ssh transport under it. Errors
// here are reported but must never mask the original operation failure, so
// callers log and move on.
func (s *sshSession) Close() error {
	clientErr := s.client.Close()
	connErr := s.conn.Close()
	if clientErr != nil {
		return clientErr
	}
	return connErr
}
