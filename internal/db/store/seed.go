package store

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/buehnenwerk/udo-story/internal/db/models"
)

const (
	// DefaultAdminUsername is the username of the seeded admin account.
	DefaultAdminUsername = "admin"

	// DefaultAdminPassword is the initial password of the seeded admin
	// account. It should be changed after the first login.
	DefaultAdminPassword = "admin123"
)

// defaultSettings holds the fixed key space seeded on first run. Keys already
// present in the store are never touched, so the seed is run-once idempotent.
var defaultSettings = map[string]string{
	"site_title":    "Die Udo Jürgens Story",
	"site_subtitle": "Sein Leben, seine Liebe, seine Musik",
	"artist_name":   "Alex Parker",
	"artist_role":   "Sänger & Pianist",
	"artist_bio": "Er gilt nicht grundlos als bekanntester Udo Jürgens-Interpret im gesamten " +
		"deutschsprachigen Raum. Bereits seit seiner Kindheit hat Alex Parker ein Faible für die " +
		"Musik von Udo Jürgens. Das Talent, unvergessliche Melodien mit mal heiteren, mal " +
		"nachdenklichen und philosophischen Texten zu vereinen, faszinierte den damals 13-jährigen " +
		"Klavierschüler und noch vor dem Stimmbruch – hat Parker nach eigenem Bekunden angefangen, " +
		"Udo Jürgens' Songs nachzusingen und dessen nasal geprägte, einzigartige Klangfarbe seiner " +
		"Stimme nachzuahmen.\n\nGanz im Stil seines Idols versteht er es auf sympathische Art und " +
		"Weise, eine einzigartige, hochemotionale Atmosphäre zwischen sich und seinem Publikum zu " +
		"schaffen: „Mein Ziel ist es, die Chansons von Udo Jürgens weiterleben zu lassen und den " +
		"Menschen damit eine Freude zu machen, sie vielleicht ein wenig zu trösten\", erklärt Alex " +
		"Parker. „Denn seine Lieder sind unsterblich!\"\n\nUnd so verwundert es nicht, dass die " +
		"beiden Protagonisten Gabriela Benesch & Alex Parker mit Der Udo Jürgens Story einen " +
		"unvergesslichen Erinnerungsabend geschaffen haben, bei dem sie das Publikum begeistern " +
		"und das „Udo Jürgens-Gefühl\" immer wieder aufleben lassen.",
	"hero_image":       "",
	"artist_image":     "",
	"kontakt_email":    "kontakt@beispiel.de",
	"kontakt_telefon":  "",
	"kontakt_adresse":  "",
	"impressum":        "© 2026 | Alle Rechte vorbehalten",
	"facebook_url":     "",
	"youtube_url":      "",
	"instagram_url":    "",
	"meta_description": "Die Udo Jürgens Story – Sein Leben, seine Liebe, seine Musik. Eine Hommage an den Grandseigneur der Unterhaltungsbranche.",
	"og_image":         "",
}

// seed inserts the default admin account and any missing default setting.
func seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to count admin accounts")
	}

	if count == 0 {
		admin := models.Admin{
			Username: DefaultAdminUsername,
			Password: models.HashPassword(DefaultAdminPassword),
		}

		if err := db.Create(&admin).Error; err != nil {
			return errors.Wrap(err, "failed to seed admin account")
		}
	}

	for key, value := range defaultSettings {
		var present int64
		if err := db.Model(&models.Setting{}).Where("key = ?", key).Count(&present).Error; err != nil {
			return errors.Wrap(err, "failed to check default setting")
		}

		if present == 0 {
			if err := db.Create(&models.Setting{Key: key, Value: value}).Error; err != nil {
				return errors.Wrapf(err, "failed to seed setting %s", key)
			}
		}
	}

	return nil
}
