package publisher

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"woocommerce.GO/config"
	"woocommerce.GO/core/cache"
)

// urlCacheTTL is how long a published URL stays cached (seconds).
const urlCacheTTL = int64(24 * 3600)

// SFTPPublisher uploads local files to the public image host over SFTP and
// returns their web URLs. Transfers are idempotent: a remote file with the
// same size is not re-uploaded. Published URLs are cached in-process and, when
// Redis is configured, shared across processes.
type SFTPPublisher struct {
	cfg      config.SFTPConfig
	urlCache *cache.Cache

	mu     sync.Mutex
	sshCli *ssh.Client
	cli    *sftp.Client
}

func NewSFTP(cfg config.SFTPConfig) *SFTPPublisher {
	return &SFTPPublisher{cfg: cfg, urlCache: cache.NewCache()}
}

// Connect opens the SSH session and the SFTP subsystem. Publish connects
// lazily, so calling Connect up front is only needed to fail fast.
func (p *SFTPPublisher) Connect() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connectLocked()
}

func (p *SFTPPublisher) connectLocked() error {
	if p.cli != nil {
		return nil
	}
	if p.cfg.Host == "" {
		return fmt.Errorf("sftp host not configured")
	}

	sshCfg := &ssh.ClientConfig{
		User: p.cfg.Username,
		Auth: []ssh.AuthMethod{ssh.Password(p.cfg.Password)},
		// The image host is addressed by IP from a private env var; host key
		// pinning is handled at the network layer.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         30 * time.Second,
	}

	addr := net.JoinHostPort(p.cfg.Host, strconv.Itoa(p.cfg.Port))
	sshCli, err := ssh.Dial("tcp", addr, sshCfg)
	if err != nil {
		return fmt.Errorf("ssh dial %s: %w", addr, err)
	}

	cli, err := sftp.NewClient(sshCli)
	if err != nil {
		sshCli.Close()
		return fmt.Errorf("sftp subsystem: %w", err)
	}

	p.sshCli = sshCli
	p.cli = cli
	return nil
}

// Close tears down the SFTP and SSH sessions.
func (p *SFTPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var err error
	if p.cli != nil {
		err = p.cli.Close()
		p.cli = nil
	}
	if p.sshCli != nil {
		if cerr := p.sshCli.Close(); err == nil {
			err = cerr
		}
		p.sshCli = nil
	}
	return err
}

// Publish uploads localPath to remoteDir under the configured base path,
// renamed to renameTo, and returns the public URL. When the remote file
// already exists with the same size the transfer is skipped.
func (p *SFTPPublisher) Publish(ctx context.Context, localPath, remoteDir, renameTo string) (string, error) {
	name := CleanFilename(renameTo)
	cacheKey := remoteDir + "/" + name

	if v, ok := p.urlCache.Get(cacheKey); ok {
		return v.(string), nil
	}
	if url := p.sharedCacheGet(cacheKey); url != "" {
		p.urlCache.Set(cacheKey, url, urlCacheTTL)
		return url, nil
	}

	info, err := os.Stat(localPath)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", localPath, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connectLocked(); err != nil {
		return "", err
	}

	dir := path.Join(p.cfg.RemoteBasePath, remoteDir)
	remotePath := path.Join(dir, name)

	if remote, err := p.cli.Stat(remotePath); err == nil && remote.Size() == info.Size() {
		url := p.webURL(remoteDir, name)
		p.cacheURL(cacheKey, url)
		return url, nil
	}

	if err := p.cli.MkdirAll(dir); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	if err := p.uploadLocked(localPath, remotePath); err != nil {
		return "", err
	}

	url := p.webURL(remoteDir, name)
	p.cacheURL(cacheKey, url)
	return url, nil
}

func (p *SFTPPublisher) uploadLocked(localPath, remotePath string) error {
	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", localPath, err)
	}
	defer src.Close()

	dst, err := p.cli.Create(remotePath)
	if err != nil {
		return fmt.Errorf("create %s: %w", remotePath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("upload %s: %w", remotePath, err)
	}
	return nil
}

// webURL builds the public URL of a published file. The domain falls back to
// the last segment of the remote base path, which by convention is the vhost
// directory name.
func (p *SFTPPublisher) webURL(remoteDir, name string) string {
	domain := p.cfg.WebDomain
	if domain == "" {
		domain = path.Base(strings.TrimRight(p.cfg.RemoteBasePath, "/"))
	}
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	return "https://" + domain + "/" + path.Join(remoteDir, name)
}

func (p *SFTPPublisher) cacheURL(key, url string) {
	p.urlCache.Set(key, url, urlCacheTTL)
	if config.RedisClient != nil {
		config.RedisClient.Set(config.RedisCtx(), "img:"+key, url, 24*time.Hour)
	}
}

func (p *SFTPPublisher) sharedCacheGet(key string) string {
	if config.RedisClient == nil {
		return ""
	}
	v, err := config.RedisClient.Get(config.RedisCtx(), "img:"+key).Result()
	if err != nil {
		return ""
	}
	return v
}
