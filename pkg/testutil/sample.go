package testutil

import (
	"context"
	"database/sql"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/questday/backend/internal/entity"
	"github.com/questday/backend/internal/repository"
	"github.com/questday/backend/pkg/dateutil"
	"github.com/questday/backend/pkg/xcontext"
)

// SampleUser creates a user with randomized fields. Non-zero fields of init
// overwrite the sample before it is saved.
func SampleUser(ctx context.Context, init *entity.User) (entity.User, error) {
	userRepo := repository.NewUserRepository()

	sample := &entity.User{
		Base: entity.Base{ID: uuid.NewString()},
		Name: uuid.NewString(),
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := userRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

// SampleQuest creates a proceeding quest registered on the current logical
// day with randomized fields. Non-zero fields of init overwrite the sample
// before it is saved.
func SampleQuest(ctx context.Context, init *entity.Quest) (entity.Quest, error) {
	questRepo := repository.NewQuestRepository()

	resetHour := xcontext.Configs(ctx).Quest.DayResetHour
	sample := &entity.Quest{
		Base:   entity.Base{ID: uuid.NewString()},
		UserID: uuid.NewString(),
		Seq:    1,
		Title:  uuid.NewString(),
		Type:   entity.QuestMain,
		State:  entity.QuestProceed,
		RegisteredDay: sql.NullTime{
			Valid: true,
			Time:  dateutil.LogicalDate(time.Now(), resetHour),
		},
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := questRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

// SampleAchievement creates an active achievement with randomized fields.
// Non-zero fields of init overwrite the sample before it is saved.
func SampleAchievement(ctx context.Context, init *entity.Achievement) (entity.Achievement, error) {
	achievementRepo := repository.NewAchievementRepository()

	sample := &entity.Achievement{
		Base:        entity.Base{ID: uuid.NewString()},
		Title:       uuid.NewString(),
		Type:        entity.AchievementQuestRegistration,
		TargetValue: 1,
		Active:      true,
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := achievementRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if !overwriteField.IsZero() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
