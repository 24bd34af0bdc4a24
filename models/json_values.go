package models

import (
	"database/sql/driver"
	"encoding/json"
)

// Bu dosyadaki tipler JSON kolonlarını depolama sınırında bir kez parse eder.
// Bozuk veya boş JSON hataya değil boş değere düşer: görüntüsüz araba veya
// iletişim kanalı olmayan partner render edilebilir bir durumdur, 500 değil.

// ImageList arabaların images_json kolonundaki sıralı görsel URL listesi.
type ImageList []string

// Scan bozuk JSON'da listeyi boşaltır, hata döndürmez.
func (l *ImageList) Scan(value interface{}) error {
	*l = nil
	raw, ok := asBytes(value)
	if !ok || len(raw) == 0 {
		return nil
	}
	var urls []string
	if err := json.Unmarshal(raw, &urls); err != nil {
		return nil
	}
	*l = urls
	return nil
}

func (l ImageList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal([]string(l))
}

// Contact partnerin tek bir iletişim kanalı (telegram, whatsapp, telefon...).
type Contact struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Label string `json:"label,omitempty"`
}

// ContactList contacts_json kolonunun tipli karşılığı.
type ContactList []Contact

func (l *ContactList) Scan(value interface{}) error {
	*l = nil
	raw, ok := asBytes(value)
	if !ok || len(raw) == 0 {
		return nil
	}
	var contacts []Contact
	if err := json.Unmarshal(raw, &contacts); err != nil {
		return nil
	}
	*l = contacts
	return nil
}

func (l ContactList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal([]Contact(l))
}

// CropMeta logo/kapak görselinin kırpma bilgisi. Valid=false, kolonun boş
// ya da bozuk olduğunu gösterir; view bu durumda kırpmasız render eder.
type CropMeta struct {
	X      int  `json:"x"`
	Y      int  `json:"y"`
	Width  int  `json:"width"`
	Height int  `json:"height"`
	Valid  bool `json:"-"`
}

func (m *CropMeta) Scan(value interface{}) error {
	*m = CropMeta{}
	raw, ok := asBytes(value)
	if !ok || len(raw) == 0 {
		return nil
	}
	var parsed CropMeta
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil
	}
	parsed.Valid = true
	*m = parsed
	return nil
}

func (m CropMeta) Value() (driver.Value, error) {
	if !m.Valid {
		return nil, nil
	}
	return json.Marshal(m)
}

// asBytes sürücüden gelen değeri byte dilimine çevirir (string veya []byte).
func asBytes(value interface{}) ([]byte, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	default:
		return nil, false
	}
}
