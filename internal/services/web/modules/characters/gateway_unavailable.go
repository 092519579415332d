package characters

import (
	"context"

	apperrors "github.com/louisbranch/charactercatalog/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func (unavailableGateway) ListCharacters(context.Context, int, string) (CharacterPage, error) {
	return CharacterPage{}, apperrors.EK(apperrors.KindUnavailable, "errors.upstream.unavailable", "character catalog is not configured")
}

func (unavailableGateway) GetCharacter(context.Context, string) (Character, error) {
	return Character{}, apperrors.EK(apperrors.KindUnavailable, "errors.upstream.unavailable", "character catalog is not configured")
}

func (unavailableGateway) GetRelated(context.Context, string) (RelatedEntity, error) {
	return RelatedEntity{}, apperrors.EK(apperrors.KindUnavailable, "errors.upstream.unavailable", "character catalog is not configured")
}
