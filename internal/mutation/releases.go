package mutation

import (
	"context"

	"release-desk/internal/apperr"
	"release-desk/internal/dashboard"
	"release-desk/internal/domain/music"
	"release-desk/internal/dto"

	"gorm.io/gorm"
)

// CreateRelease inserts a Submitted release and its splits together.
func (c *Coordinator) CreateRelease(ctx context.Context, req dto.CreateReleaseRequest) (dto.Release, error) {
	if blank(req.Title) || blank(req.Artist) || blank(req.Genre) {
		return dto.Release{}, apperr.Validation("Title, artist and genre are required")
	}
	splits, err := parseSplits(req.Splits)
	if err != nil {
		return dto.Release{}, err
	}
	date, err := dashboard.ParseDate(req.ReleaseDate)
	if err != nil {
		return dto.Release{}, apperr.Validation("releaseDate must be YYYY-MM-DD")
	}

	rel := music.Release{
		Title:       req.Title,
		Artist:      req.Artist,
		Genre:       req.Genre,
		Status:      music.StatusSubmitted,
		ReleaseDate: date,
	}

	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Splits").Create(&rel).Error; err != nil {
			return err
		}
		rows, err := insertReleaseSplits(tx, rel.ID, splits)
		if err != nil {
			return err
		}
		rel.Splits = rows
		return nil
	})
	if err != nil {
		return dto.Release{}, txError("Failed to create release", err)
	}

	return dashboard.ToReleaseDTO(rel), nil
}

// ReplaceReleaseSplits swaps the whole split set of a release. The parent row lock makes
// concurrent replaces run one after another, so the stored set is always one caller's input.
func (c *Coordinator) ReplaceReleaseSplits(ctx context.Context, releaseID uint, in []dto.Split) error {
	splits, err := parseSplits(in)
	if err != nil {
		return err
	}

	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rel music.Release
		if err := forUpdate(tx).Select("id").First(&rel, releaseID).Error; err != nil {
			return notFoundOr(err, "Release")
		}
		if err := tx.Where("release_id = ?", releaseID).Delete(&music.ReleaseSplit{}).Error; err != nil {
			return err
		}
		_, err := insertReleaseSplits(tx, releaseID, splits)
		return err
	})
	return txError("Failed to update release splits", err)
}

func insertReleaseSplits(tx *gorm.DB, releaseID uint, splits []parsedSplit) ([]music.ReleaseSplit, error) {
	rows := make([]music.ReleaseSplit, 0, len(splits))
	for _, s := range splits {
		rows = append(rows, music.ReleaseSplit{ReleaseID: releaseID, Name: s.name, Share: s.share})
	}
	if len(rows) == 0 {
		return rows, nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
