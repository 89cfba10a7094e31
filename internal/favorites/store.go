// Package favorites хранит избранные ID треков между сессиями
package favorites

import (
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/hazadus/mpreview/internal/data"
)

// Store упорядоченный список избранных ID поверх ключа mp_favs
type Store struct {
	kv  data.Store
	ids []string
}

// Load читает избранное из хранилища. Поврежденное значение
// молча превращается в пустой список.
func Load(kv data.Store) *Store {
	s := &Store{kv: kv, ids: []string{}}

	raw, ok, err := kv.Get(data.FavoritesKey)
	if err != nil {
		log.WithField("component", "favorites").Debugf("ошибка чтения избранного: %v", err)
		return s
	}
	if !ok || raw == "" {
		return s
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		log.WithField("component", "favorites").Debugf("поврежденное избранное проигнорировано: %v", err)
		return s
	}
	if ids != nil {
		s.ids = ids
	}
	return s
}

// Contains проверяет наличие ID в избранном
func (s *Store) Contains(id string) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Toggle удаляет ID, если он есть, иначе добавляет в конец.
// После каждого изменения список переписывается целиком; если записать
// не удалось, список возвращается к прежнему состоянию.
func (s *Store) Toggle(id string) (bool, error) {
	previous := s.ids
	added := !s.Contains(id)
	if added {
		s.ids = append(append(make([]string, 0, len(previous)+1), previous...), id)
	} else {
		kept := make([]string, 0, len(s.ids))
		for _, v := range s.ids {
			if v != id {
				kept = append(kept, v)
			}
		}
		s.ids = kept
	}

	if err := s.Save(); err != nil {
		s.ids = previous
		return added, err
	}
	return added, nil
}

// Save записывает список в хранилище
func (s *Store) Save() error {
	raw, err := json.Marshal(s.ids)
	if err != nil {
		return fmt.Errorf("ошибка сериализации избранного: %w", err)
	}
	if err := s.kv.Set(data.FavoritesKey, string(raw)); err != nil {
		return fmt.Errorf("ошибка сохранения избранного: %w", err)
	}
	return nil
}

// IDs возвращает копию списка в порядке добавления
func (s *Store) IDs() []string {
	return append([]string(nil), s.ids...)
}

// Len количество избранных ID
func (s *Store) Len() int {
	return len(s.ids)
}
