// Package attachment validates file metadata attached to tasks and meetings
// and hands out presigned upload URLs for the blobs.
package attachment

import (
	"context"
	"fmt"
	"math"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/planner/domain"
)

const (
	MaxFileSize = 10 << 20
	MaxFiles    = 5
)

// AllowedExtensions is the upload allow-list, lower-case with the leading dot.
var AllowedExtensions = []string{".pdf", ".doc", ".docx", ".txt", ".jpg", ".jpeg", ".png", ".gif", ".zip"}

var (
	ErrFileTooLarge    = domain.NewKeyedError(domain.ErrCodeInvalid, "file exceeds 10MB", "attachment.error.tooLarge")
	ErrTooManyFiles    = domain.NewKeyedError(domain.ErrCodeInvalid, "at most 5 files can be attached", "attachment.error.tooMany")
	ErrUnsupportedType = domain.NewKeyedError(domain.ErrCodeInvalid, "file type is not allowed", "attachment.error.unsupported")
	ErrUnavailable     = domain.NewKeyedError(domain.ErrCodeUnavailable, "uploads are not configured", "attachment.error.unavailable")
	ErrNameRequired    = domain.NewError(domain.ErrCodeInvalid, "file name is required")
)

// Presigner issues upload URLs for object keys.
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string) (string, error)
	ObjectURL(key string) string
}

// TaskStore is the slice of the domain store used to edit task attachments.
type TaskStore interface {
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
}

// MeetingStore is the slice of the meeting store used to edit attachments.
type MeetingStore interface {
	Get(ctx context.Context, id string) (*domain.Meeting, error)
	SetAttachments(ctx context.Context, id string, attachments []domain.Attachment) (*domain.Meeting, error)
}

// Upload is a prepared attachment and where to PUT its bytes.
type Upload struct {
	Attachment domain.Attachment `json:"attachment"`
	Key        string            `json:"key"`
	UploadURL  string            `json:"uploadUrl"`
	Method     string            `json:"method"`
}

type Option func(*UseCase)

func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(uc *UseCase) {
		if fn != nil {
			uc.idGenerator = fn
		}
	}
}

type UseCase struct {
	presigner Presigner
	tasks     TaskStore
	meetings  MeetingStore

	logger      *zap.Logger
	now         func() time.Time
	idGenerator func() string

	// serializes read-modify-write of owner attachment lists
	mu sync.Mutex
}

// New builds the attachment service. presigner may be nil, in which case
// Prepare reports ErrUnavailable while attach/detach keep working.
func New(presigner Presigner, tasks TaskStore, meetings MeetingStore, logger *zap.Logger, opts ...Option) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &UseCase{
		presigner:   presigner,
		tasks:       tasks,
		meetings:    meetings,
		logger:      logger,
		now:         time.Now,
		idGenerator: uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Validate checks a single file against the size limit and the allow-list.
func Validate(name string, size int64) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if size > MaxFileSize {
		return ErrFileTooLarge
	}
	ext := strings.ToLower(path.Ext(name))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return ErrUnsupportedType
}

// Prepare validates the file and returns its metadata together with a
// presigned PUT URL under attachments/YYYY/M/D/<id>/<name>.
func (uc *UseCase) Prepare(ctx context.Context, name string, size int64, contentType string) (*Upload, error) {
	name = cleanName(name)
	if err := Validate(name, size); err != nil {
		return nil, err
	}
	if uc.presigner == nil {
		return nil, ErrUnavailable
	}

	now := uc.now()
	id := uc.idGenerator()
	key := fmt.Sprintf("attachments/%d/%d/%d/%s/%s", now.Year(), now.Month(), now.Day(), id, name)

	url, err := uc.presigner.PresignPut(ctx, key, contentType)
	if err != nil {
		uc.logger.Error("failed to presign upload", zap.String("key", key), zap.Error(err))
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "presign upload", err)
	}

	return &Upload{
		Attachment: domain.Attachment{
			ID:         id,
			Name:       name,
			Size:       size,
			Type:       contentType,
			URL:        uc.presigner.ObjectURL(key),
			UploadedAt: now,
		},
		Key:       key,
		UploadURL: url,
		Method:    "PUT",
	}, nil
}

// AttachToTask appends att to the task's attachments. An unknown task yields
// nil without error, matching the domain store's update semantics.
func (uc *UseCase) AttachToTask(ctx context.Context, taskID string, att domain.Attachment) (*domain.Task, error) {
	if err := uc.checkAttachment(att); err != nil {
		return nil, err
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	task, err := uc.tasks.GetTask(ctx, taskID)
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	if len(task.Attachments) >= MaxFiles {
		return nil, ErrTooManyFiles
	}
	attachments := append(append([]domain.Attachment{}, task.Attachments...), uc.stamp(att))
	return uc.tasks.UpdateTask(ctx, taskID, domain.TaskPatch{Attachments: &attachments})
}

// DetachFromTask drops the attachment with the given id. Unknown ids leave
// the task untouched.
func (uc *UseCase) DetachFromTask(ctx context.Context, taskID, attachmentID string) (*domain.Task, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	task, err := uc.tasks.GetTask(ctx, taskID)
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	attachments, removed := without(task.Attachments, attachmentID)
	if !removed {
		return task, nil
	}
	return uc.tasks.UpdateTask(ctx, taskID, domain.TaskPatch{Attachments: &attachments})
}

func (uc *UseCase) AttachToMeeting(ctx context.Context, meetingID string, att domain.Attachment) (*domain.Meeting, error) {
	if err := uc.checkAttachment(att); err != nil {
		return nil, err
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	meeting, err := uc.meetings.Get(ctx, meetingID)
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	if len(meeting.Attachments) >= MaxFiles {
		return nil, ErrTooManyFiles
	}
	attachments := append(append([]domain.Attachment{}, meeting.Attachments...), uc.stamp(att))
	return uc.meetings.SetAttachments(ctx, meetingID, attachments)
}

func (uc *UseCase) DetachFromMeeting(ctx context.Context, meetingID, attachmentID string) (*domain.Meeting, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	meeting, err := uc.meetings.Get(ctx, meetingID)
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	attachments, removed := without(meeting.Attachments, attachmentID)
	if !removed {
		return meeting, nil
	}
	return uc.meetings.SetAttachments(ctx, meetingID, attachments)
}

func (uc *UseCase) checkAttachment(att domain.Attachment) error {
	if err := Validate(att.Name, att.Size); err != nil {
		return err
	}
	if att.URL == "" {
		return domain.ErrInvalidPayload
	}
	return nil
}

func (uc *UseCase) stamp(att domain.Attachment) domain.Attachment {
	if att.ID == "" {
		att.ID = uc.idGenerator()
	}
	if att.UploadedAt.IsZero() {
		att.UploadedAt = uc.now()
	}
	return att
}

func without(list []domain.Attachment, id string) ([]domain.Attachment, bool) {
	out := make([]domain.Attachment, 0, len(list))
	for _, a := range list {
		if a.ID != id {
			out = append(out, a)
		}
	}
	return out, len(out) != len(list)
}

func ignoreNotFound(err error) error {
	if domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return nil
	}
	return err
}

func cleanName(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	if name == "" {
		return ""
	}
	base := path.Base(name)
	if base == "." || base == "/" {
		return ""
	}
	return base
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatSize renders a byte count with base-1024 units and at most two
// decimals, e.g. "0 Bytes", "1.5 KB", "10 MB".
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	value := float64(bytes) / math.Pow(1024, float64(i))
	value = math.Round(value*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[i]
}
