package archive

import (
	"context"
	"crypto/sha256"
	"errors"
	"sort"
	"time"

	"github.com/creativeprojects/emldump/lib"
	"github.com/creativeprojects/emldump/mailbox"
)

type Config struct {
	Session Session
	// Reporter receives progress and per-message errors (optional)
	Reporter Reporter
	// Index records the archived messages and the resume cursor (optional)
	Index Index
	// NameFormat defaults to NameID
	NameFormat  NameFormat
	DebugLogger lib.Logger
}

// Archiver downloads all the messages of a folder, one at a time
type Archiver struct {
	session  Session
	reporter Reporter
	index    Index
	format   NameFormat
	log      lib.Logger
}

// Result summarizes a run
type Result struct {
	Folder      string
	UidValidity uint32
	Checkpoint  mailbox.MessageID
	// Total is the number of IDs returned by the search
	Total int
	// Skipped are the IDs below the checkpoint
	Skipped  int
	Written  int
	Failed   int
	Failures []mailbox.MessageID
}

func New(cfg Config) (*Archiver, error) {
	if cfg.Session == nil {
		return nil, errors.New("missing session")
	}
	format := cfg.NameFormat
	if format == "" {
		format = NameID
	}
	if !format.Valid() {
		return nil, errors.New("invalid filename format " + string(format))
	}
	reporter := cfg.Reporter
	if reporter == nil {
		reporter = &noReport{}
	}
	log := cfg.DebugLogger
	if log == nil {
		log = &lib.NoLog{}
	}
	return &Archiver{
		session:  cfg.Session,
		reporter: reporter,
		index:    cfg.Index,
		format:   format,
		log:      log,
	}, nil
}

// Archive writes every message of the folder with an ID greater than or equal to the checkpoint.
// IDs below the checkpoint are counted but not fetched.
//
// Selecting or searching the folder are the only errors returned: a message that cannot be fetched
// or written is sent to the reporter and the run continues with the next one.
// The context is only checked between two messages.
func (a *Archiver) Archive(ctx context.Context, folder mailbox.Info, target Writer, checkpoint mailbox.MessageID) (*Result, error) {
	return a.run(ctx, folder, target, func(*mailbox.Status) mailbox.MessageID {
		return checkpoint
	})
}

// Resume archives the folder starting after the cursor saved in the index.
// The whole folder is archived when there's no index, no cursor yet, or when the UIDVALIDITY of the folder changed.
func (a *Archiver) Resume(ctx context.Context, folder mailbox.Info, target Writer) (*Result, error) {
	return a.run(ctx, folder, target, func(status *mailbox.Status) mailbox.MessageID {
		if a.index == nil {
			return mailbox.EmptyMessageID
		}
		checkpoint, err := a.index.Checkpoint(folder.Name, status.UidValidity)
		if err != nil {
			a.log.Printf("cannot load cursor of folder %q, starting from the beginning: %s", folder.Name, err)
			return mailbox.EmptyMessageID
		}
		return checkpoint
	})
}

func (a *Archiver) run(ctx context.Context, folder mailbox.Info, target Writer, checkpointFrom func(*mailbox.Status) mailbox.MessageID) (*Result, error) {
	result := &Result{
		Folder:   folder.Name,
		Failures: make([]mailbox.MessageID, 0),
	}
	status, err := a.session.SelectMailbox(folder)
	if err != nil {
		return result, newError(lib.ErrFolderSelect, mailbox.EmptyMessageID, err)
	}
	result.UidValidity = status.UidValidity
	a.log.Printf("Selected folder %q: %d messages, uid validity %d", folder.Name, status.Messages, status.UidValidity)

	checkpoint := checkpointFrom(status)
	result.Checkpoint = checkpoint

	ids, err := a.session.SearchMessages()
	if err != nil {
		return result, newError(lib.ErrSearch, mailbox.EmptyMessageID, err)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	result.Total = len(ids)
	a.log.Printf("Found %d messages, starting at id %s", result.Total, checkpoint)

	for index, id := range ids {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		a.reporter.Progress(index+1, result.Total)

		if id < checkpoint {
			result.Skipped++
			continue
		}
		entry, err := a.archiveMessage(ctx, folder.Name, status.UidValidity, target, id)
		if err != nil {
			if IsFatal(err) {
				return result, err
			}
			result.Failed++
			result.Failures = append(result.Failures, id)
			a.reporter.Error(id, err)
			continue
		}
		result.Written++
		a.record(folder.Name, status.UidValidity, *entry, result.Failed == 0)
	}
	return result, nil
}

func (a *Archiver) archiveMessage(ctx context.Context, folder string, uidValidity uint32, target Writer, id mailbox.MessageID) (*mailbox.Entry, error) {
	msg, err := a.session.FetchMessage(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			// interrupted while downloading: this is not a failure of the message
			return nil, ctx.Err()
		}
		return nil, newError(lib.ErrFetch, id, err)
	}
	if msg == nil {
		return nil, newError(lib.ErrFetch, id, lib.ErrMessageNotFound)
	}

	headers := ParseHeaders(msg.Body)
	subject := SanitizeSubject(headers.Subject)
	if subject == "" {
		subject = NoSubject
	}
	filename := BuildFilename(id, subject, SanitizeSubject(headers.From), a.format)

	a.removePrevious(folder, uidValidity, target, id)

	location, err := target.Write(filename, msg)
	if err != nil {
		return nil, newError(lib.ErrWrite, id, err)
	}
	a.log.Printf("Message saved: id=%s size=%d location=%q", id, len(msg.Body), location)

	hash := sha256.Sum256(msg.Body)
	return &mailbox.Entry{
		ID:         id,
		Subject:    subject,
		Filename:   filename,
		Location:   location,
		Size:       len(msg.Body),
		Hash:       hash[:],
		ArchivedAt: time.Now(),
	}, nil
}

// removePrevious deletes the copy left by a previous run, for the writers that never overwrite
func (a *Archiver) removePrevious(folder string, uidValidity uint32, target Writer, id mailbox.MessageID) {
	remover, ok := target.(Remover)
	if !ok || a.index == nil {
		return
	}
	previous, err := a.index.Entry(folder, uidValidity, id)
	if err != nil || previous == nil || previous.Location == "" {
		return
	}
	if err := remover.Remove(previous.Location); err != nil {
		a.log.Printf("cannot remove previous copy of message id=%s at %q: %s", id, previous.Location, err)
	}
}

func (a *Archiver) record(folder string, uidValidity uint32, entry mailbox.Entry, advance bool) {
	if a.index == nil {
		return
	}
	// the message is on disk: a broken index only loses the resume position
	if err := a.index.PutEntry(folder, uidValidity, entry, advance); err != nil {
		a.log.Printf("cannot index message id=%s: %s", entry.ID, err)
	}
}

type noReport struct{}

func (r *noReport) Progress(current, total int)           {}
func (r *noReport) Error(id mailbox.MessageID, err error) {}
