package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/stayops-lab/xenia/pkg/domain/model"
	"github.com/stayops-lab/xenia/pkg/domain/types"
	"github.com/stayops-lab/xenia/pkg/repository/memory"
	"github.com/stayops-lab/xenia/pkg/usecase"
)

func TestStageBuildsCandidate(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New(), &mockLLMClient{})

	staged, err := uc.Stage(ctx, stagedFixture(1))
	gt.NoError(t, err).Required()
	gt.Value(t, staged.HotelID).Equal(types.HotelID(1))
	gt.Value(t, staged.Details).Equal("The bathroom faucet is leaking")
	gt.Value(t, staged.Source).Equal(model.SourceCustomer)

	// A staged candidate has no identity and is not persisted
	gt.Value(t, staged.ID).Equal(types.RequestID(""))
	gt.Bool(t, staged.Committed()).False()

	reqs, err := uc.ListRequests(ctx, 1)
	gt.NoError(t, err)
	gt.Array(t, reqs).Length(0)
}

func TestStageValidation(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New(), &mockLLMClient{})

	testCases := map[string]model.StageInput{
		"missing hotel id":     {HotelName: "Oceanview Inn", Details: "leak"},
		"missing hotel name":   {HotelID: 1, Details: "leak"},
		"missing details":      {HotelID: 1, HotelName: "Oceanview Inn"},
		"negative room number": {HotelID: 1, HotelName: "Oceanview Inn", Details: "leak", RoomNumber: -1},
	}

	for name, input := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Stage(ctx, input)
			gt.Error(t, err)
			gt.Bool(t, goerr.HasTag(err, types.ErrTagValidation)).True()
		})
	}
}

func TestCommitAssignsIDOnce(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo, &mockLLMClient{})

	staged, err := uc.Stage(ctx, stagedFixture(1))
	gt.NoError(t, err).Required()

	committed, err := uc.Commit(ctx, staged)
	gt.NoError(t, err).Required()
	gt.Value(t, committed.ID).NotEqual(types.RequestID(""))
	gt.Bool(t, committed.Committed()).True()
	gt.Value(t, committed.PartitionKey()).Equal("hotel-1")
	gt.Bool(t, committed.CreatedAt.IsZero()).False()

	// Commit does not mutate the staged candidate it was handed
	gt.Value(t, staged.ID).Equal(types.RequestID(""))

	got, err := uc.GetRequest(ctx, committed.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, got.Details).Equal(committed.Details)
	gt.Array(t, got.Embedding).Length(model.EmbeddingDimension)
}

func TestCommitTwiceRejected(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New(), &mockLLMClient{})

	staged, err := uc.Stage(ctx, stagedFixture(1))
	gt.NoError(t, err).Required()

	committed, err := uc.Commit(ctx, staged)
	gt.NoError(t, err).Required()

	_, err = uc.Commit(ctx, committed)
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrAlreadyCommitted)).True()

	reqs, err := uc.ListRequests(ctx, 1)
	gt.NoError(t, err)
	gt.Array(t, reqs).Length(1)
}

func TestCommitSurvivesEmbeddingFailure(t *testing.T) {
	ctx := context.Background()
	llm := &mockLLMClient{
		generateEmbeddingFn: func(ctx context.Context, dimension int, input []string) ([][]float64, error) {
			return nil, errors.New("embedding service down")
		},
	}
	uc := usecase.New(memory.New(), llm)

	staged, err := uc.Stage(ctx, stagedFixture(1))
	gt.NoError(t, err).Required()

	committed, err := uc.Commit(ctx, staged)
	gt.NoError(t, err).Required()
	gt.Array(t, committed.Embedding).Length(0)

	got, err := uc.GetRequest(ctx, committed.ID)
	gt.NoError(t, err).Required()
	gt.Array(t, got.Embedding).Length(0)
}

func TestCommitNotifies(t *testing.T) {
	ctx := context.Background()
	notifier := newMockNotifier()
	uc := usecase.New(memory.New(), &mockLLMClient{}, usecase.WithNotifier(notifier))

	staged, err := uc.Stage(ctx, stagedFixture(1))
	gt.NoError(t, err).Required()

	committed, err := uc.Commit(ctx, staged)
	gt.NoError(t, err).Required()

	notified := notifier.wait(5 * time.Second)
	gt.Value(t, notified).NotNil()
	gt.Value(t, notified.ID).Equal(committed.ID)
}

func TestCommitNilAndInvalid(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New(), &mockLLMClient{})

	_, err := uc.Commit(ctx, nil)
	gt.Error(t, err)
	gt.Bool(t, goerr.HasTag(err, types.ErrTagValidation)).True()

	_, err = uc.Commit(ctx, &model.MaintenanceRequest{HotelID: 1})
	gt.Error(t, err)
	gt.Bool(t, goerr.HasTag(err, types.ErrTagValidation)).True()
}

func TestGetRequestNotFound(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New(), &mockLLMClient{})

	_, err := uc.GetRequest(ctx, types.NewRequestID())
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, usecase.ErrRequestNotFound)).True()
}

func TestListRequestsNewestFirst(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New(), &mockLLMClient{})

	var ids []types.RequestID
	for _, details := range []string{"first problem", "second problem", "third problem"} {
		input := stagedFixture(1)
		input.Details = details
		staged, err := uc.Stage(ctx, input)
		gt.NoError(t, err).Required()
		committed, err := uc.Commit(ctx, staged)
		gt.NoError(t, err).Required()
		ids = append(ids, committed.ID)
		time.Sleep(time.Millisecond)
	}

	reqs, err := uc.ListRequests(ctx, 1)
	gt.NoError(t, err).Required()
	gt.Array(t, reqs).Length(3)
	gt.Value(t, reqs[0].ID).Equal(ids[2])
	gt.Value(t, reqs[2].ID).Equal(ids[0])

	other, err := uc.ListRequests(ctx, 2)
	gt.NoError(t, err)
	gt.Array(t, other).Length(0)
}
