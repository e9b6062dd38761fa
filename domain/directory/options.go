package directory

import "github.com/chamberhub/bizportal/domain/repository"

// WithDepartment filters by the "department" column.
func WithDepartment(department string) repository.Option {
	return repository.WithCondition("department", department)
}

// WithChannel filters by the "channel_type" column.
func WithChannel(channel ChannelType) repository.Option {
	return repository.WithCondition("channel_type", string(channel))
}

// WithPlatform filters by the "platform" column.
func WithPlatform(platform string) repository.Option {
	return repository.WithCondition("platform", platform)
}

// WithFeatured filters to featured services.
func WithFeatured() repository.Option {
	return repository.WithCondition("featured", true)
}

// WithDisplayOrder sorts by display position then English name.
func WithDisplayOrder() []repository.Option {
	return []repository.Option{
		repository.WithOrderAsc("sort_order"),
		repository.WithOrderAsc("name"),
	}
}
