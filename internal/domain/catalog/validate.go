package catalog

import (
	"errors"
	"fmt"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rpggio/showcase/internal/domain/gallery"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 2000
	maxContentLength     = 2000
)

var categoryValues = func() []interface{} {
	out := make([]interface{}, 0, len(gallery.Categories))
	for _, c := range gallery.Categories {
		out = append(out, c)
	}
	return out
}()

var absoluteURL = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("must be an absolute URL")
	}
	return nil
})

func validateItem(item *gallery.Item) error {
	err := validation.ValidateStruct(item,
		validation.Field(&item.ID, validation.Required, validation.Min(int64(1))),
		validation.Field(&item.Title, validation.Required, validation.Length(1, maxTitleLength)),
		validation.Field(&item.Description, validation.Length(0, maxDescriptionLength)),
		validation.Field(&item.Category, validation.Required, validation.In(categoryValues...)),
		validation.Field(&item.LiveURL, absoluteURL),
		validation.Field(&item.RepoURL, absoluteURL),
		validation.Field(&item.Stars, validation.Min(0)),
		validation.Field(&item.Forks, validation.Min(0)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func validateTestimonial(t *Testimonial) error {
	err := validation.ValidateStruct(t,
		validation.Field(&t.Name, validation.Required, validation.Length(1, maxTitleLength)),
		validation.Field(&t.Content, validation.Required, validation.Length(1, maxContentLength)),
		validation.Field(&t.Rating, validation.Required, validation.Min(1), validation.Max(5)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
