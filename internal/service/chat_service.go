package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"docsense/internal/analyzer"
	"docsense/internal/domain"
	"docsense/internal/extract"
	"docsense/internal/port"
)

// ChatService defines the per-document question answering contract.
type ChatService interface {
	Ask(ctx context.Context, sessionID, docID uuid.UUID, question string) (*domain.ChatTurn, error)
	History(ctx context.Context, sessionID, docID uuid.UUID) ([]domain.ChatTurn, error)
}

type chatService struct {
	documentRepo port.DocumentRepository
	chatRepo     port.ChatRepository
	storage      port.ObjectStorage
	extractor    *extract.Extractor
	analyzer     *analyzer.Analyzer
}

// NewChatService creates a new ChatService implementation.
func NewChatService(
	documentRepo port.DocumentRepository,
	chatRepo port.ChatRepository,
	storage port.ObjectStorage,
	extractor *extract.Extractor,
	an *analyzer.Analyzer,
) ChatService {
	return &chatService{
		documentRepo: documentRepo,
		chatRepo:     chatRepo,
		storage:      storage,
		extractor:    extractor,
		analyzer:     an,
	}
}

// Ask answers a question about a previously uploaded document. Content is
// re-extracted from the stored original on every question; extraction is
// deterministic so the answer sees exactly what the analysis saw. A failed
// model call is converted into an apologetic answer and the turn is still
// recorded, so one bad call never breaks the conversation history.
func (s *chatService) Ask(ctx context.Context, sessionID, docID uuid.UUID, question string) (*domain.ChatTurn, error) {
	meta, err := s.documentRepo.GetByID(ctx, sessionID, docID)
	if err != nil {
		return nil, err
	}

	answer, err := s.answer(ctx, meta, question)
	if err != nil {
		log.Printf("chatService.Ask: answering failed for document %s: %v", docID, err)
		answer = fmt.Sprintf("I apologize, but I encountered an error while processing your question: %v", err)
	}

	turn := &domain.ChatTurn{
		ID:         uuid.New(),
		SessionID:  sessionID,
		DocumentID: docID,
		Question:   question,
		Answer:     answer,
	}
	if err := s.chatRepo.Append(ctx, turn); err != nil {
		return nil, fmt.Errorf("chatService.Ask: %w", err)
	}
	return turn, nil
}

func (s *chatService) answer(ctx context.Context, meta *domain.DocumentMeta, question string) (string, error) {
	data, err := s.storage.Download(ctx, meta.S3Bucket, meta.S3Key)
	if err != nil {
		return "", fmt.Errorf("downloading original: %w", err)
	}
	content, err := s.extractor.Extract(data, meta.FileType)
	if err != nil {
		return "", err
	}
	return s.analyzer.AnswerQuestion(ctx, question, content)
}

func (s *chatService) History(ctx context.Context, sessionID, docID uuid.UUID) ([]domain.ChatTurn, error) {
	if _, err := s.documentRepo.GetByID(ctx, sessionID, docID); err != nil {
		return nil, err
	}
	return s.chatRepo.ListByDocument(ctx, sessionID, docID)
}
