// Package publicid URL'lerde kullanılan public ID'leri üretir ve doğrular.
// Public ID'ler dahili sıralı anahtarlardan bağımsız, en az 12 basamaklı
// rastgele sayılardır; sıralı ID tahminiyle kayıtlara erişilememesi bu
// tabana dayanır.
package publicid

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
)

const (
	// MinValue geçerli bir public ID'nin alt sınırı (10^11, yani 12 basamak).
	// Bu eşiğin altındaki sayılar dahili sıralı ID olabilir ve asla public
	// ID olarak kabul edilmez.
	MinValue int64 = 100_000_000_000

	// DefaultDigits üretilen ID'lerin varsayılan basamak sayısı.
	DefaultDigits = 12

	maxDigits   = 18
	maxAttempts = 5
)

var (
	// ErrInvalid parse edilemeyen veya eşiğin altında kalan girdiler için döner.
	ErrInvalid = errors.New("geçersiz public id")
	// ErrGenerationFailed tüm denemelere rağmen benzersiz ID üretilemediğinde döner.
	ErrGenerationFailed = errors.New("benzersiz public id üretilemedi")
)

// ExistsFunc adayın ilgili tabloda zaten kullanımda olup olmadığını söyler.
type ExistsFunc func(id int64) (bool, error)

// Parse bir path segmentini public ID'ye çevirir. Sadece rakamlardan oluşan,
// MinValue ve üzeri tam sayılar geçerlidir; diğer her girdi ErrInvalid döner.
func Parse(raw string) (int64, error) {
	if raw == "" || len(raw) > maxDigits+1 {
		return 0, ErrInvalid
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, ErrInvalid
		}
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < MinValue {
		return 0, ErrInvalid
	}
	return n, nil
}

// Generate verilen basamak sayısında rastgele bir public ID üretir.
// prefix > 0 ise ID o rakamla başlar (namespace ayrımı için; örn. arama
// kriterleri 2 ile başlar). exists nil değilse çakışma kontrolü yapılır ve
// çakışmada yeni bir çekiliş denenir.
func Generate(prefix, digits int, exists ExistsFunc) (int64, error) {
	if digits < DefaultDigits {
		digits = DefaultDigits
	}
	if digits > maxDigits {
		return 0, fmt.Errorf("public id en fazla %d basamaklı olabilir", maxDigits)
	}
	if prefix < 0 || prefix > 9 {
		return 0, fmt.Errorf("geçersiz public id prefix'i: %d", prefix)
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate, err := draw(prefix, digits)
		if err != nil {
			return 0, err
		}
		if exists == nil {
			return candidate, nil
		}
		taken, err := exists(candidate)
		if err != nil {
			return 0, err
		}
		if !taken {
			return candidate, nil
		}
	}
	return 0, ErrGenerationFailed
}

// draw tek bir rastgele çekiliş yapar. prefix'li modda değer
// [prefix*10^(d-1), (prefix+1)*10^(d-1)) aralığına, prefix'siz modda
// [10^(d-1), 10^d) aralığına düşer; iki mod da tam d basamak garanti eder.
func draw(prefix, digits int) (int64, error) {
	low := pow10(digits - 1)
	if prefix > 0 {
		n, err := rand.Int(rand.Reader, big.NewInt(low))
		if err != nil {
			return 0, err
		}
		return int64(prefix)*low + n.Int64(), nil
	}
	n, err := rand.Int(rand.Reader, big.NewInt(9*low))
	if err != nil {
		return 0, err
	}
	return low + n.Int64(), nil
}

func pow10(n int) int64 {
	v := int64(1)
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}
