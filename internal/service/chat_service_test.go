package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsense/internal/analyzer"
	"docsense/internal/domain"
	"docsense/internal/extract"
)

type stubGateway struct {
	response string
	err      error
}

func (g *stubGateway) Generate(_ context.Context, prompt string, parts []domain.ContentPart) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func (g *stubGateway) ModelName() string { return "test-model" }

type stubRecognizer struct{ text string }

func (r *stubRecognizer) Recognize(images []image.Image) (string, error) {
	return r.text, nil
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestChatService(t *testing.T, gw *stubGateway) (ChatService, *memDocumentRepo, *memChatRepo, *memStorage, uuid.UUID, uuid.UUID) {
	t.Helper()
	docs := &memDocumentRepo{}
	chats := &memChatRepo{}
	storage := newMemStorage()

	sessionID := uuid.New()
	docID := uuid.New()
	require.NoError(t, docs.Create(context.Background(), &domain.DocumentMeta{
		ID:        docID,
		SessionID: sessionID,
		FileType:  domain.FileTypePNG,
		S3Bucket:  "bucket",
		S3Key:     "key.png",
	}))
	storage.objects["bucket/key.png"] = testPNG(t)

	extractor := extract.New(&stubRecognizer{text: "document text"}, 50*1024*1024)
	svc := NewChatService(docs, chats, storage, extractor, analyzer.New(gw))
	return svc, docs, chats, storage, sessionID, docID
}

func TestChatService_Ask(t *testing.T) {
	svc, _, chats, _, sessionID, docID := newTestChatService(t, &stubGateway{response: "The total is $500."})

	turn, err := svc.Ask(context.Background(), sessionID, docID, "What is the total?")

	require.NoError(t, err)
	assert.Equal(t, "What is the total?", turn.Question)
	assert.Equal(t, "The total is $500.", turn.Answer)
	require.Len(t, chats.turns, 1)
}

func TestChatService_AskModelFailureRecordsApology(t *testing.T) {
	svc, _, chats, _, sessionID, docID := newTestChatService(t, &stubGateway{err: errors.New("upstream unavailable")})

	turn, err := svc.Ask(context.Background(), sessionID, docID, "Anything?")

	require.NoError(t, err)
	assert.Contains(t, turn.Answer, "I apologize")
	assert.Contains(t, turn.Answer, "upstream unavailable")
	require.Len(t, chats.turns, 1)
}

func TestChatService_AskUnknownDocument(t *testing.T) {
	svc, _, _, _, sessionID, _ := newTestChatService(t, &stubGateway{response: "x"})

	_, err := svc.Ask(context.Background(), sessionID, uuid.New(), "Anything?")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChatService_History(t *testing.T) {
	svc, _, _, _, sessionID, docID := newTestChatService(t, &stubGateway{response: "first answer"})

	_, err := svc.Ask(context.Background(), sessionID, docID, "first question")
	require.NoError(t, err)

	turns, err := svc.History(context.Background(), sessionID, docID)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "first question", turns[0].Question)
}

func TestChatService_HistoryUnknownDocument(t *testing.T) {
	svc, _, _, _, sessionID, _ := newTestChatService(t, &stubGateway{response: "x"})

	_, err := svc.History(context.Background(), sessionID, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
