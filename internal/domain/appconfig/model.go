package appconfig

// SingletonID is the primary key of the only app_config row.
const SingletonID uint = 1

type AppConfig struct {
	ID                 uint `gorm:"primaryKey"`
	OnboardingComplete bool `gorm:"column:onboarding_complete;not null;default:false"`
}

func (AppConfig) TableName() string { return "app_config" }
