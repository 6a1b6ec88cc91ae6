package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/questday/backend/internal/domain/notification/event"
	"github.com/questday/backend/internal/entity"
	"github.com/questday/backend/internal/model"
	"github.com/questday/backend/internal/repository"
	"github.com/questday/backend/pkg/dateutil"
	"github.com/questday/backend/pkg/enum"
	"github.com/questday/backend/pkg/errorx"
	"github.com/questday/backend/pkg/pubsub"
	"github.com/questday/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type QuestDomain interface {
	Register(context.Context, *model.RegisterQuestRequest) (*model.RegisterQuestResponse, error)
	Get(context.Context, *model.GetQuestRequest) (*model.GetQuestResponse, error)
	GetList(context.Context, *model.GetListQuestRequest) (*model.GetListQuestResponse, error)
	UpdateDetails(context.Context, *model.UpdateDetailQuestsRequest) (*model.UpdateDetailQuestsResponse, error)
	Interact(context.Context, *model.InteractDetailQuestRequest) (*model.InteractDetailQuestResponse, error)
	Complete(context.Context, *model.CompleteQuestRequest) (*model.CompleteQuestResponse, error)
	Discard(context.Context, *model.DiscardQuestRequest) (*model.DiscardQuestResponse, error)
	Delete(context.Context, *model.DeleteQuestRequest) (*model.DeleteQuestResponse, error)
}

type questDomain struct {
	questRepo       repository.QuestRepository
	detailQuestRepo repository.DetailQuestRepository
	userStatDomain  UserStatDomain
	rewardProvider  RewardProvider
	publisher       pubsub.Publisher
}

func NewQuestDomain(
	questRepo repository.QuestRepository,
	detailQuestRepo repository.DetailQuestRepository,
	userStatDomain UserStatDomain,
	rewardProvider RewardProvider,
	publisher pubsub.Publisher,
) *questDomain {
	return &questDomain{
		questRepo:       questRepo,
		detailQuestRepo: detailQuestRepo,
		userStatDomain:  userStatDomain,
		rewardProvider:  rewardProvider,
		publisher:       publisher,
	}
}

func (d *questDomain) Register(
	ctx context.Context, req *model.RegisterQuestRequest,
) (*model.RegisterQuestResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a title")
	}

	questType, err := enum.ToEnum[entity.QuestType](req.Type)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid quest type: %v", err)
		return nil, errorx.New(errorx.BadRequest,
			"Invalid quest type %s, allow %v", req.Type, enum.Variants[entity.QuestType]())
	}

	now := time.Now()
	cfg := xcontext.Configs(ctx).Quest

	deadline := sql.NullTime{}
	if req.Deadline != "" {
		t, err := time.Parse(model.DefaultTimeLayout, req.Deadline)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid deadline: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid deadline")
		}

		if err := validateDeadline(t, now, cfg.DeadlineGap, cfg.DayResetHour); err != nil {
			return nil, err
		}

		deadline = sql.NullTime{Valid: true, Time: t}
	}

	if len(req.Details) > cfg.MaxDetailQuests {
		return nil, errorx.New(errorx.BadRequest,
			"Allow at most %d detail quests", cfg.MaxDetailQuests)
	}

	questID := uuid.NewString()
	details := make([]entity.DetailQuest, 0, len(req.Details))
	for i, detail := range req.Details {
		newDetail, err := newDetailQuest(ctx, questID, i, detail)
		if err != nil {
			return nil, err
		}

		details = append(details, *newDetail)
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	maxSeq, err := d.questRepo.MaxSeq(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get max quest seq: %v", err)
		return nil, errorx.Unknown
	}

	quest := &entity.Quest{
		Base:        entity.Base{ID: questID},
		UserID:      userID,
		Seq:         maxSeq + 1,
		Title:       req.Title,
		Description: req.Description,
		Type:        questType,
		State:       entity.QuestProceed,
		Deadline:    deadline,
		RegisteredDay: sql.NullTime{
			Valid: true,
			Time:  dateutil.LogicalDate(now, cfg.DayResetHour),
		},
		Details: details,
	}

	if err := d.questRepo.Create(ctx, quest); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create quest: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userStatDomain.RecordRegistration(ctx, userID, now); err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	event.Publish(ctx, d.publisher, event.QuestRegisteredEvent{
		QuestID: quest.ID,
		Seq:     quest.Seq,
		Title:   quest.Title,
	}, userID)

	return &model.RegisterQuestResponse{ID: quest.ID, Seq: quest.Seq}, nil
}

func (d *questDomain) Get(
	ctx context.Context, req *model.GetQuestRequest,
) (*model.GetQuestResponse, error) {
	quest, err := d.getOwnedQuest(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	resp := model.GetQuestResponse(model.ConvertQuest(quest))
	return &resp, nil
}

func (d *questDomain) GetList(
	ctx context.Context, req *model.GetListQuestRequest,
) (*model.GetListQuestResponse, error) {
	quests, err := d.questRepo.GetList(ctx, xcontext.RequestUserID(ctx), req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get quest list: %v", err)
		return nil, errorx.Unknown
	}

	clientQuests := []model.Quest{}
	for i := range quests {
		clientQuests = append(clientQuests, model.ConvertQuest(&quests[i]))
	}

	return &model.GetListQuestResponse{Quests: clientQuests}, nil
}

// UpdateDetails replaces the detail list positionally. A detail keeps its
// progress only if the incoming detail at the same position has the same type
// and identity; everything else restarts at zero. Reordering details
// therefore resets their counters.
func (d *questDomain) UpdateDetails(
	ctx context.Context, req *model.UpdateDetailQuestsRequest,
) (*model.UpdateDetailQuestsResponse, error) {
	quest, err := d.getOwnedQuest(ctx, req.QuestID)
	if err != nil {
		return nil, err
	}

	if quest.State.IsTerminal() {
		return nil, errorx.New(errorx.Unavailable, "Only allow to update a proceeding quest")
	}

	cfg := xcontext.Configs(ctx).Quest
	if len(req.Details) > cfg.MaxDetailQuests {
		return nil, errorx.New(errorx.BadRequest,
			"Allow at most %d detail quests", cfg.MaxDetailQuests)
	}

	details := make([]entity.DetailQuest, 0, len(req.Details))
	for i, reqDetail := range req.Details {
		newDetail, err := newDetailQuest(ctx, quest.ID, i, reqDetail)
		if err != nil {
			return nil, err
		}

		if i < len(quest.Details) {
			oldDetail := quest.Details[i]
			sameIdentity := reqDetail.ID == "" || reqDetail.ID == oldDetail.ID
			if sameIdentity && oldDetail.Type == newDetail.Type {
				newDetail.Base.ID = oldDetail.ID
				newDetail.SetCount(oldDetail.Count)
			}
		}

		details = append(details, *newDetail)
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.detailQuestRepo.Replace(ctx, quest.ID, details); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot replace detail quests: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	clientDetails := []model.DetailQuest{}
	for i := range details {
		clientDetails = append(clientDetails, model.ConvertDetailQuest(&details[i]))
	}

	return &model.UpdateDetailQuestsResponse{Details: clientDetails}, nil
}

func (d *questDomain) Interact(
	ctx context.Context, req *model.InteractDetailQuestRequest,
) (*model.InteractDetailQuestResponse, error) {
	quest, err := d.getOwnedQuest(ctx, req.QuestID)
	if err != nil {
		return nil, err
	}

	if quest.State.IsTerminal() {
		return nil, errorx.New(errorx.Unavailable, "Only allow to interact with a proceeding quest")
	}

	var detail *entity.DetailQuest
	for i := range quest.Details {
		if quest.Details[i].ID == req.DetailID {
			detail = &quest.Details[i]
			break
		}
	}

	if detail == nil {
		return nil, errorx.New(errorx.NotFound, "Not found detail quest")
	}

	if req.Count != nil {
		detail.SetCount(*req.Count)
	} else {
		detail.Interact()
	}

	if err := d.detailQuestRepo.Save(ctx, detail); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save detail quest: %v", err)
		return nil, errorx.Unknown
	}

	return &model.InteractDetailQuestResponse{
		Detail:      model.ConvertDetailQuest(detail),
		CanComplete: canComplete(quest),
	}, nil
}

func (d *questDomain) Complete(
	ctx context.Context, req *model.CompleteQuestRequest,
) (*model.CompleteQuestResponse, error) {
	quest, err := d.getOwnedQuest(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if quest.State.IsTerminal() {
		return nil, errorx.New(errorx.Unavailable, "Only allow to complete a proceeding quest")
	}

	if !canComplete(quest) {
		return nil, errorx.New(errorx.Unavailable, "Not all detail quests are completed")
	}

	now := time.Now()
	day := dateutil.LogicalDate(now, xcontext.Configs(ctx).Quest.DayResetHour)
	gold := d.rewardProvider.QuestClearGold(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The from-state guard closes the window between the read above and this
	// write. A concurrent discard, delete or overdue sweep wins the race and
	// the complete is rejected instead of overwriting a terminal state.
	if err := d.questRepo.UpdateStateFrom(ctx, quest.ID, entity.QuestProceed, entity.QuestComplete); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unavailable, "Only allow to complete a proceeding quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot complete quest: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.questRepo.SetCompletedDay(ctx, quest.ID, day); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot set completed day: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userStatDomain.RecordCompletion(ctx, quest.UserID, now); err != nil {
		return nil, err
	}

	if gold > 0 {
		if err := d.userStatDomain.RecordGoldEarn(ctx, quest.UserID, gold); err != nil {
			return nil, err
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	event.Publish(ctx, d.publisher, event.QuestCompletedEvent{
		QuestID:    quest.ID,
		Title:      quest.Title,
		GoldEarned: gold,
	}, quest.UserID)

	return &model.CompleteQuestResponse{GoldEarned: gold}, nil
}

func (d *questDomain) Discard(
	ctx context.Context, req *model.DiscardQuestRequest,
) (*model.DiscardQuestResponse, error) {
	quest, err := d.getOwnedQuest(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if quest.State.IsTerminal() {
		return nil, errorx.New(errorx.Unavailable, "Only allow to discard a proceeding quest")
	}

	if err := d.questRepo.UpdateStateFrom(ctx, quest.ID, entity.QuestProceed, entity.QuestDiscard); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unavailable, "Only allow to discard a proceeding quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot discard quest: %v", err)
		return nil, errorx.Unknown
	}

	event.Publish(ctx, d.publisher, event.QuestDiscardedEvent{
		QuestID: quest.ID,
		Title:   quest.Title,
	}, quest.UserID)

	return &model.DiscardQuestResponse{}, nil
}

// Delete turns the quest into its final soft-deleted state. It accepts any
// current state and nothing ever leaves delete.
func (d *questDomain) Delete(
	ctx context.Context, req *model.DeleteQuestRequest,
) (*model.DeleteQuestResponse, error) {
	quest, err := d.getOwnedQuest(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.questRepo.UpdateState(ctx, quest.ID, entity.QuestDelete); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete quest: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteQuestResponse{}, nil
}

func (d *questDomain) getOwnedQuest(ctx context.Context, id string) (*entity.Quest, error) {
	quest, err := d.questRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	if quest.UserID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return quest, nil
}

func canComplete(quest *entity.Quest) bool {
	for i := range quest.Details {
		if !quest.Details[i].IsComplete() {
			return false
		}
	}

	return true
}

// validateDeadline requires the deadline to lie strictly inside
// (now+gap, nextReset-gap). Both boundaries are exclusive, so a deadline
// exactly gap away from either end is rejected.
func validateDeadline(deadline, now time.Time, gap time.Duration, resetHour int) error {
	earliest := now.Add(gap)
	latest := dateutil.NextReset(now, resetHour).Add(-gap)

	if !deadline.After(earliest) || !deadline.Before(latest) {
		return errorx.New(errorx.BadRequest,
			"Deadline must be between %s and %s",
			earliest.Format(model.DefaultTimeLayout),
			latest.Format(model.DefaultTimeLayout))
	}

	return nil
}

func newDetailQuest(
	ctx context.Context, questID string, position int, req model.DetailQuest,
) (*entity.DetailQuest, error) {
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a detail quest title")
	}

	detailType, err := enum.ToEnum[entity.DetailQuestType](req.Type)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid detail quest type: %v", err)
		return nil, errorx.New(errorx.BadRequest,
			"Invalid detail quest type %s, allow %v", req.Type, enum.Variants[entity.DetailQuestType]())
	}

	targetCount := req.TargetCount
	if detailType == entity.DetailCheck {
		// A checkbox is a counter with a single step.
		targetCount = 1
	}

	if targetCount < 1 {
		return nil, errorx.New(errorx.BadRequest, "Require a positive target count")
	}

	detail := &entity.DetailQuest{
		Base:        entity.Base{ID: uuid.NewString()},
		QuestID:     questID,
		Position:    position,
		Title:       req.Title,
		Type:        detailType,
		TargetCount: targetCount,
		State:       entity.DetailProceed,
	}

	return detail, nil
}
