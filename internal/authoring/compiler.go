package authoring

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"lukechampine.com/blake3"

	"discauthor/internal/config"
	"discauthor/internal/discgraph"
	"discauthor/internal/dvdxml"
	"discauthor/internal/linker"
	"discauthor/internal/logging"
	"discauthor/internal/reference"
	"discauthor/internal/services"
)

const lockRetryDelay = 50 * time.Millisecond

// Options controls document emission.
type Options struct {
	// Dest is the dvdauthor output directory written on the root element.
	Dest string
	// Comments writes node names and addresses as XML comments.
	Comments bool
	// AddressAttributes adds non-standard address attributes.
	AddressAttributes bool
	// Jumppad enables the jumppad even when the disc does not.
	Jumppad bool
}

// DefaultOptions returns the options used when no configuration is loaded.
func DefaultOptions() Options {
	return Options{Comments: true}
}

// OptionsFromConfig derives render options from configuration.
func OptionsFromConfig(cfg *config.Config, dest string) Options {
	if cfg == nil {
		opts := DefaultOptions()
		opts.Dest = dest
		return opts
	}
	return Options{
		Dest:              dest,
		Comments:          cfg.Render.Comments,
		AddressAttributes: cfg.Render.AddressAttributes,
		Jumppad:           cfg.Render.Jumppad,
	}
}

// AddressRow is one entry of the address map in walk order.
type AddressRow struct {
	ID      discgraph.ID
	Kind    reference.Kind
	Name    string
	Address linker.Address
}

// Result is a rendered document plus what was learned while rendering it.
type Result struct {
	Document  []byte
	Digest    string
	Addresses []AddressRow
	Titlesets int
	Menus     int
	Titles    int
}

// Compiler renders disc graphs.
type Compiler struct {
	logger *slog.Logger
}

// NewCompiler constructs a compiler logging through logger.
func NewCompiler(logger *slog.Logger) *Compiler {
	return &Compiler{logger: logging.NewComponentLogger(logger, "authoring")}
}

// Render links disc and emits its document. Link faults are returned
// unchanged inside a validation error so callers can use errors.As to reach
// *linker.FaultError or *linker.DuplicateIdentifierError.
func (c *Compiler) Render(disc *discgraph.Disc, opts Options) (*Result, error) {
	if disc == nil {
		return nil, services.Wrap(services.ErrValidation, "render", "", "disc is nil", nil)
	}
	logger := c.logger.With(logging.String("disc", disc.ID().String()))

	logger.Debug("link started", logging.String(logging.FieldStage, "link"))
	program, err := linker.Link(disc)
	if err != nil {
		var faults *linker.FaultError
		if errors.As(err, &faults) {
			logging.WarnWithContext(logger, "render rejected", "render_faults",
				logging.Int("content_faults", len(faults.ContentMissing())),
				logging.Int("reference_faults", len(faults.UnresolvedReferences())),
				logging.String(logging.FieldErrorHint, "run discauthor check to list every fault"),
				logging.String(logging.FieldImpact, "no document written"),
			)
		}
		return nil, services.Wrap(services.ErrValidation, "link", "", "", err)
	}

	doc, err := dvdxml.Encode(program, dvdxml.Options{
		Dest:              opts.Dest,
		Comments:          opts.Comments,
		AddressAttributes: opts.AddressAttributes,
		Jumppad:           opts.Jumppad,
	})
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	result := &Result{Document: doc, Digest: Digest(doc)}
	for _, entry := range program.Registry.Entries() {
		result.Addresses = append(result.Addresses, AddressRow{
			ID:      entry.Node.ID(),
			Kind:    entry.Node.Kind(),
			Name:    entry.Node.Name(),
			Address: entry.Address,
		})
		switch entry.Node.Kind() {
		case reference.KindTitleset:
			result.Titlesets++
		case reference.KindMenu:
			result.Menus++
		case reference.KindTitle:
			result.Titles++
		}
	}

	logger.Debug("document rendered",
		logging.String(logging.FieldStage, "render"),
		logging.Int("titlesets", result.Titlesets),
		logging.Int("menus", result.Menus),
		logging.Int("titles", result.Titles),
		logging.Int64("document_bytes", int64(len(doc))),
	)
	return result, nil
}

// WriteFile renders disc and writes the document to path. Concurrent writers
// of the same path are serialized through a lock file next to it and the
// document is replaced atomically.
func (c *Compiler) WriteFile(ctx context.Context, disc *discgraph.Disc, path string, opts Options) (*Result, error) {
	result, err := c.Render(disc, opts)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "write", "prepare", "create output directory", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "write", "lock", path, err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrTransient, "write", "lock", "document is locked by another writer", nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp document: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(result.Document); err != nil {
		_ = tmp.Close()
		cleanup()
		return nil, fmt.Errorf("write temp document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return nil, fmt.Errorf("close temp document: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return nil, fmt.Errorf("chmod temp document: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return nil, fmt.Errorf("replace document: %w", err)
	}

	c.logger.Info("document written",
		logging.String("path", path),
		logging.String("digest", result.Digest),
		logging.Int64("document_bytes", int64(len(result.Document))),
	)
	return result, nil
}

// Digest returns the hex BLAKE3-256 digest of a document.
func Digest(doc []byte) string {
	sum := blake3.Sum256(doc)
	return hex.EncodeToString(sum[:])
}
