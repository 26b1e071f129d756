// internal/model/content_ref.go
package model

import "fmt"

// ContentKind は視聴進捗の対象種別
type ContentKind string

const (
	ContentKindMovie   ContentKind = "movie"
	ContentKindEpisode ContentKind = "episode"
)

// ContentRef は Movie(id) | Episode(id) のどちらか一方だけを指す。
// ゼロ値は無効。
type ContentRef struct {
	kind ContentKind
	id   uint
}

func MovieRef(id uint) ContentRef {
	return ContentRef{kind: ContentKindMovie, id: id}
}

func EpisodeRef(id uint) ContentRef {
	return ContentRef{kind: ContentKindEpisode, id: id}
}

// NewContentRef は movie_id / episode_id のどちらか一方だけが指定されている場合にのみ成功する
func NewContentRef(movieID, episodeID *uint) (ContentRef, error) {
	switch {
	case movieID != nil && episodeID != nil:
		return ContentRef{}, NewAppError("INVALID_CONTENT_REF", "Informe apenas movie_id ou episode_id, não ambos.", "movie_id,episode_id", ErrInvalidInput)
	case movieID == nil && episodeID == nil:
		return ContentRef{}, NewAppError("INVALID_CONTENT_REF", "É necessário informar movie_id ou episode_id.", "movie_id,episode_id", ErrInvalidInput)
	case movieID != nil:
		if *movieID == 0 {
			return ContentRef{}, NewAppError("INVALID_CONTENT_REF", "movie_id inválido.", "movie_id", ErrInvalidInput)
		}
		return MovieRef(*movieID), nil
	default:
		if *episodeID == 0 {
			return ContentRef{}, NewAppError("INVALID_CONTENT_REF", "episode_id inválido.", "episode_id", ErrInvalidInput)
		}
		return EpisodeRef(*episodeID), nil
	}
}

func (r ContentRef) Kind() ContentKind { return r.kind }
func (r ContentRef) ID() uint          { return r.id }

func (r ContentRef) IsZero() bool {
	return r.kind == "" || r.id == 0
}

// Columns は (movie_id, episode_id) の2カラム表現を返す。必ず片方だけが非nil。
func (r ContentRef) Columns() (movieID, episodeID *uint) {
	id := r.id
	switch r.kind {
	case ContentKindMovie:
		return &id, nil
	case ContentKindEpisode:
		return nil, &id
	}
	return nil, nil
}

func (r ContentRef) String() string {
	if r.IsZero() {
		return "content(invalid)"
	}
	return fmt.Sprintf("%s:%d", r.kind, r.id)
}
