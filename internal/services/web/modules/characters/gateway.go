package characters

import "context"

// CharacterGateway loads catalog records for the characters module.
type CharacterGateway interface {
	ListCharacters(ctx context.Context, page int, search string) (CharacterPage, error)
	GetCharacter(ctx context.Context, id string) (Character, error)
	GetRelated(ctx context.Context, url string) (RelatedEntity, error)
}

// RelatedEntity is a flat record referenced by a character, such as a film
// or a planet.
type RelatedEntity struct {
	URL   string
	Label string
}
