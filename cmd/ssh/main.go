package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/savetheearth/internal/asset"
	"github.com/tomz197/savetheearth/internal/audio"
	"github.com/tomz197/savetheearth/internal/config"
	"github.com/tomz197/savetheearth/internal/draw"
	"github.com/tomz197/savetheearth/internal/input"
	applog "github.com/tomz197/savetheearth/internal/logging"
	"github.com/tomz197/savetheearth/internal/loop"
	"github.com/tomz197/savetheearth/internal/session"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	serverCloseTimeout = 5 * time.Second
)

// server hosts one independent game per SSH session.
type server struct {
	log      *log.Logger
	pool     *asset.Pool
	sessions *session.Registry
}

func main() {
	logger := applog.New(os.Stderr, "ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("ssh config", "host", host, "port", port, "hostKey", hostKeyPath)

	pool, err := asset.Open(config.GetEnv(config.AssetsEnv, ""),
		config.GetEnvInt64(config.SeedEnv, time.Now().UnixNano()))
	if err != nil {
		logger.Fatal("cannot load assets", "err", err)
	}

	srv := &server{
		log:      logger,
		pool:     pool,
		sessions: session.NewRegistry(logger),
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			srv.gameMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Game input is latency sensitive.
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("cannot create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down", "sessions", srv.sessions.Len())
	srv.sessions.Shutdown(config.ShutdownGrace)

	ctx, cancel := context.WithTimeout(context.Background(), serverCloseTimeout)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware runs a game for the length of the session.
func (srv *server) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		s := srv.sessions.Register(sess.User())
		defer srv.sessions.Unregister(s.ID)
		srv.log.Debug("pty", "id", s.ID, "term", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		win := &windowSize{win: pty.Window}
		go win.watch(winCh)

		if err := srv.play(sess, s, win.size); err != nil {
			srv.log.Error("game error", "id", s.ID, "user", sess.User(), "err", err)
		}
		next(sess)
	}
}

// play runs one game on the session's terminal until the player quits, the
// connection drops or the server shuts the session down.
func (srv *server) play(sess ssh.Session, s *session.Session, size draw.TermSizeFunc) error {
	surface := draw.NewTerminal(sess, size)
	if err := surface.Open(); err != nil {
		return err
	}
	defer surface.Close()

	game := loop.New(loop.Options{
		Surface:  surface,
		Input:    input.StartStream(bufio.NewReader(sess)),
		Audio:    audio.NewBell(sess),
		Sizes:    srv.pool,
		Rand:     rand.New(rand.NewSource(time.Now().UnixNano() + int64(s.ID))),
		Logger:   srv.log.With("id", s.ID),
		Idle:     config.IdleTimeout,
		Shutdown: s.Shutdown(),
	})
	return game.Run(sess.Context())
}

// windowSize follows the PTY size as the client resizes its terminal.
type windowSize struct {
	mu  sync.RWMutex
	win ssh.Window
}

// watch applies window changes until ch is closed.
func (w *windowSize) watch(ch <-chan ssh.Window) {
	for win := range ch {
		w.set(win)
	}
}

func (w *windowSize) set(win ssh.Window) {
	w.mu.Lock()
	w.win = win
	w.mu.Unlock()
}

// size satisfies draw.TermSizeFunc.
func (w *windowSize) size() (int, int, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.win.Width, w.win.Height, nil
}
