package services

import (
	"chat-hub/domain"
	"chat-hub/domain/chat"
	"chat-hub/domain/mimetypes"
	"chat-hub/errors"
	"chat-hub/runtime"
	"context"
	"log/slog"
	"strings"
	"time"
)

const bytesPerMB = 1024 * 1024

type TransferService struct {
	log                   *slog.Logger
	orchestrator          *runtime.Orchestrator
	maxFileSize           int64
	averageProcessingTime time.Duration
}

func NewTransferService(log *slog.Logger, o *runtime.Orchestrator, maxFileSize int64, averageProcessingTime time.Duration) *TransferService {
	return &TransferService{
		log:                   log,
		orchestrator:          o,
		maxFileSize:           maxFileSize,
		averageProcessingTime: averageProcessingTime,
	}
}

// SendFile validates the request, queues it and returns the queued reply with
// the estimated wait. The worker holds back its notices for the transfer until
// announce is called, which the caller does once the reply was written.
func (s *TransferService) SendFile(ctx context.Context, id domain.SessionID, cmd chat.SendFileCommand) (reply string, announce func(), err error) {
	registry := s.orchestrator.Registry()
	sender, ok := registry.Session(id)
	if !ok {
		return "", nil, errors.ErrUnknownSession
	}
	if cmd.Filename == "" || cmd.Target == "" {
		return "", nil, errors.Reject(errors.ErrUsage, chat.UsageSendFile)
	}
	if cmd.Size == 0 {
		return "", nil, errors.Reject(errors.ErrMissingSize, "File size information required.")
	}
	if err := domain.ValidateFilename(cmd.Filename); err != nil {
		return "", nil, errors.Reject(err, "Invalid filename '%s'.", cmd.Filename)
	}
	receiverID, err := registry.Lookup(cmd.Target)
	if err != nil {
		return "", nil, errors.Reject(err, "User '%s' not found or offline.", cmd.Target)
	}
	if receiverID == id {
		return "", nil, errors.Reject(errors.ErrSelfTarget, "Cannot send file to yourself.")
	}
	if _, ok := mimetypes.FromFilename(cmd.Filename); !ok {
		return "", nil, errors.Reject(errors.ErrFileType, "File type not allowed. Supported: %s", strings.Join(mimetypes.Extensions(), ", "))
	}
	if cmd.Size > s.maxFileSize {
		s.log.Warn("Transfer over size limit", "file", cmd.Filename, "from", sender.Name, "size", cmd.Size)
		return "", nil, errors.Reject(errors.ErrFileTooLarge, "File too large. Maximum size: %.1f MB", float64(s.maxFileSize)/bytesPerMB)
	}
	if cmd.Size < 0 {
		return "", nil, errors.Reject(errors.ErrEmptyFile, "Empty files are not allowed.")
	}

	queue := s.orchestrator.Queue()
	stats := queue.Stats()
	position := stats.Queued + 1
	wait := time.Duration(0)
	if stats.Active+stats.Queued >= queue.Concurrency() {
		wait = domain.EstimateWait(position, queue.Concurrency(), s.averageProcessingTime)
	}

	transfer, announce := domain.NewTransfer(cmd.Filename, sender.Name, cmd.Target, id, receiverID, cmd.Size, time.Now()).Announce()
	if err := queue.Enqueue(ctx, transfer); err != nil {
		announce()
		s.log.Warn("Transfer rejected", "file", cmd.Filename, "from", sender.Name, "to", cmd.Target, "error", err)
		return "", nil, errors.Reject(err, "File transfer queue is full or server shutting down. Try again later.")
	}

	s.log.Info("Transfer queued", "id", transfer.ID, "file", cmd.Filename, "from", sender.Name, "to", cmd.Target,
		"size", cmd.Size, "position", position, "estimated_wait", wait)
	return domain.QueuedMessage(cmd.Filename, position, wait), announce, nil
}
