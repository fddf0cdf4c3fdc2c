package create_booking

import (
	"math/rand"
	"time"

	"github.com/camp-taezhny/BookingService/internal/domain"
)

// referenceAlphabet символы случайного суффикса номера брони
const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// maxReferenceAttempts попыток сгенерировать уникальный номер
// до того, как операция будет признана неудачной
const maxReferenceAttempts = 5

// generateReference строит номер брони вида "YYYYMMDD-XXXX":
// префикс — дата создания брони (не дата записи), суффикс —
// случайные символы A-Z и 0-9
func generateReference(now time.Time) string {
	suffix := make([]byte, domain.ReferenceSuffixLength)
	for i := range suffix {
		suffix[i] = referenceAlphabet[rand.Intn(len(referenceAlphabet))]
	}
	return now.Format("20060102") + "-" + string(suffix)
}
