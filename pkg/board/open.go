package board

import (
	"context"
	"time"

	"github.com/matzehuels/pathclip/pkg/errors"
	"github.com/matzehuels/pathclip/pkg/observability"
	"github.com/matzehuels/pathclip/pkg/transfer"
)

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendHTTP  = "http"
	BackendNull  = "null"
)

// Options selects and configures a backend for Open.
type Options struct {
	Backend string
	Dir     string
	Redis   RedisConfig
	URL     string
}

// Open returns the board backend named in opts, reporting to the
// observability board hooks.
func Open(ctx context.Context, opts Options) (Board, error) {
	var (
		b   Board
		err error
	)
	switch opts.Backend {
	case BackendFile, "":
		b, err = NewFileBoard(opts.Dir)
	case BackendRedis:
		b, err = DialRedis(ctx, opts.Redis)
	case BackendHTTP:
		b, err = NewHTTPBoard(opts.URL)
	case BackendNull:
		b = NewNullBoard()
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown board backend %q", opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	backend := opts.Backend
	if backend == "" {
		backend = BackendFile
	}
	return Observe(b, backend), nil
}

// Observe wraps b so reads and writes are reported to the board hooks under
// the given backend name.
func Observe(b Board, backend string) Board {
	return &observed{Board: b, backend: backend}
}

type observed struct {
	Board
	backend string
}

func (o *observed) Put(ctx context.Context, name string, p transfer.Payload, ttl time.Duration) error {
	if err := o.Board.Put(ctx, name, p, ttl); err != nil {
		return err
	}
	observability.Board().OnBoardPut(ctx, o.backend, p.Size())
	return nil
}

func (o *observed) Get(ctx context.Context, name string) (Entry, bool, error) {
	e, ok, err := o.Board.Get(ctx, name)
	if err != nil {
		return e, ok, err
	}
	if ok {
		observability.Board().OnBoardHit(ctx, o.backend)
	} else {
		observability.Board().OnBoardMiss(ctx, o.backend)
	}
	return e, ok, nil
}

// Unwrap returns the wrapped backend.
func (o *observed) Unwrap() Board { return o.Board }

// Path returns the file backing board name if b is, or wraps, a FileBoard.
func Path(b Board, name string) (string, bool) {
	for {
		switch v := b.(type) {
		case *FileBoard:
			return v.Path(name), true
		case interface{ Unwrap() Board }:
			b = v.Unwrap()
		default:
			return "", false
		}
	}
}
