// Package notify composes notifications about new presidential appointments
package notify

import (
	"fmt"

	"github.com/umputun/appointwatch/pkg/domain"
)

// Header is the constant notification header
const Header = "Новое назначение Президента Республики Беларусь"

const textTemplate = "Опубликовано новое кадровое решение: %s, назначен(а) на должность %s. " +
	"Необходимо подготовить поздравление."

// Compose builds a notification for a relevant article
func Compose(personName, positionTitle, sourceURL string) domain.Notification {
	return domain.Notification{
		Header: Header,
		Text:   fmt.Sprintf(textTemplate, personName, positionTitle),
		Source: sourceURL,
	}
}
