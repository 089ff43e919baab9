package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
	"github.com/stayops-lab/xenia/pkg/domain/model"
	"github.com/stayops-lab/xenia/pkg/domain/types"
	"github.com/stayops-lab/xenia/pkg/repository/memory"
	"github.com/stayops-lab/xenia/pkg/usecase"
)

// scriptedLLM replays model responses in order, one per GenerateContent call
func scriptedLLM(responses ...*gollem.Response) *mockLLMClient {
	idx := 0
	return &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					if idx >= len(responses) {
						return &gollem.Response{Texts: []string{"out of script"}}, nil
					}
					resp := responses[idx]
					idx++
					return resp, nil
				},
			}, nil
		},
	}
}

func seededUseCases(t *testing.T, llm gollem.LLMClient, opts ...usecase.Option) *usecase.UseCases {
	t.Helper()
	ctx := context.Background()
	uc := usecase.New(memory.New(), llm, opts...)
	gt.NoError(t, uc.SeedCatalog(ctx, testHotels(), testBookings())).Required()
	return uc
}

func TestChatStageThenCommit(t *testing.T) {
	ctx := context.Background()
	llm := scriptedLLM(
		&gollem.Response{FunctionCalls: []*gollem.FunctionCall{{
			ID:   "call-1",
			Name: "maintenance__stage_request",
			Arguments: map[string]any{
				"hotel_name":  "oceanview inn",
				"details":     "The air conditioner is rattling",
				"room_number": int64(314),
			},
		}}},
		&gollem.Response{Texts: []string{"I drafted the request for room 314. Shall I save it?"}},
		&gollem.Response{FunctionCalls: []*gollem.FunctionCall{{
			ID:        "call-2",
			Name:      "maintenance__commit_request",
			Arguments: map[string]any{},
		}}},
		&gollem.Response{Texts: []string{"Done, your request is saved."}},
	)
	uc := seededUseCases(t, llm)

	sessionID, reply, err := uc.Chat(ctx, "", "The AC in room 314 at Oceanview Inn is rattling")
	gt.NoError(t, err).Required()
	gt.Value(t, sessionID).NotEqual(types.SessionID(""))
	gt.String(t, reply).Contains("Shall I save it?")

	// Nothing persisted until the guest confirms
	reqs, err := uc.ListRequests(ctx, 1)
	gt.NoError(t, err)
	gt.Array(t, reqs).Length(0)

	sameID, reply, err := uc.Chat(ctx, sessionID, "yes, please save it")
	gt.NoError(t, err).Required()
	gt.Value(t, sameID).Equal(sessionID)
	gt.Value(t, reply).Equal("Done, your request is saved.")

	reqs, err = uc.ListRequests(ctx, 1)
	gt.NoError(t, err).Required()
	gt.Array(t, reqs).Length(1)
	gt.Value(t, reqs[0].HotelID).Equal(types.HotelID(1))
	gt.Value(t, reqs[0].HotelName).Equal("Oceanview Inn")
	gt.Value(t, reqs[0].RoomNumber).Equal(314)
	gt.Value(t, reqs[0].Source).Equal(model.SourceCustomer)
	gt.Bool(t, reqs[0].Committed()).True()
}

func TestChatUnknownSession(t *testing.T) {
	uc := seededUseCases(t, &mockLLMClient{})

	_, _, err := uc.Chat(context.Background(), types.NewSessionID(), "hello")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrSessionNotFound)).True()
}

func TestChatIsolatesSessions(t *testing.T) {
	ctx := context.Background()
	llm := scriptedLLM(
		&gollem.Response{Texts: []string{"hello from the first conversation"}},
		&gollem.Response{Texts: []string{"hello from the second conversation"}},
	)
	uc := seededUseCases(t, llm)

	first, _, err := uc.Chat(ctx, "", "hi")
	gt.NoError(t, err).Required()
	second, _, err := uc.Chat(ctx, "", "hi")
	gt.NoError(t, err).Required()
	gt.Value(t, first).NotEqual(second)

	firstTurns, err := uc.SessionTurns(ctx, first)
	gt.NoError(t, err).Required()
	secondTurns, err := uc.SessionTurns(ctx, second)
	gt.NoError(t, err).Required()

	// Each session holds only its own exchange (plus the system prompt)
	gt.Array(t, firstTurns).Length(3)
	gt.Array(t, secondTurns).Length(3)
	gt.Value(t, firstTurns[2].Content).NotEqual(secondTurns[2].Content)
}

func TestSessionTurnsUnknownSession(t *testing.T) {
	uc := seededUseCases(t, &mockLLMClient{})

	_, err := uc.SessionTurns(context.Background(), types.NewSessionID())
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrSessionNotFound)).True()
}

// archiveRecorder captures transcripts handed to the archive service
type archiveRecorder struct {
	saved chan *model.Transcript
}

func (a *archiveRecorder) SaveTranscript(ctx context.Context, transcript *model.Transcript) error {
	a.saved <- transcript
	return nil
}

func TestChatArchivesTranscript(t *testing.T) {
	ctx := context.Background()
	recorder := &archiveRecorder{saved: make(chan *model.Transcript, 1)}
	llm := scriptedLLM(&gollem.Response{Texts: []string{"certainly"}})
	uc := seededUseCases(t, llm, usecase.WithArchive(recorder))

	sessionID, _, err := uc.Chat(ctx, "", "hello")
	gt.NoError(t, err).Required()

	select {
	case transcript := <-recorder.saved:
		gt.Value(t, transcript.SessionID).Equal(sessionID)
		gt.Array(t, transcript.Turns).Length(3)
	case <-time.After(5 * time.Second):
		t.Fatal("transcript was not archived")
	}
}
