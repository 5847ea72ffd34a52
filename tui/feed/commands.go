package feed

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"blogtty/domain"
)

func (m Model) fetchPosts(reqSeq int) tea.Cmd {
	posts := m.posts
	interactions := m.interactions
	source := m.source
	category := m.category
	tag := m.tag
	query := m.query
	queryKey := m.currentQueryKey()
	return func() tea.Msg {
		items, err := fetchPage(context.Background(), posts, interactions, source, category, tag, query, 1)
		if err != nil {
			return PostsErrorMsg{Err: err, QueryKey: queryKey, ReqSeq: reqSeq}
		}
		return PostsLoadedMsg{Posts: items, QueryKey: queryKey, RawCount: len(items), ReqSeq: reqSeq}
	}
}

func (m Model) fetchOlderPosts(reqSeq int) tea.Cmd {
	if m.loading || m.loadingMore || !m.hasMore {
		return nil
	}
	posts := m.posts
	interactions := m.interactions
	source := m.source
	category := m.category
	tag := m.tag
	query := m.query
	page := m.page + 1
	queryKey := m.currentQueryKey()
	return func() tea.Msg {
		items, err := fetchPage(context.Background(), posts, interactions, source, category, tag, query, page)
		if err != nil {
			return PostsPageErrorMsg{Err: err, QueryKey: queryKey, ReqSeq: reqSeq}
		}
		return PostsPageLoadedMsg{Posts: items, QueryKey: queryKey, RawCount: len(items), ReqSeq: reqSeq}
	}
}

func fetchPage(ctx context.Context, posts postFetcher, interactions savedLister, source Source, category, tag, query string, page int) ([]domain.Post, error) {
	switch source {
	case SourceCategory:
		return posts.ByCategory(ctx, category, page)
	case SourceTag:
		return posts.ByTag(ctx, tag, page)
	case SourceSearch:
		return posts.Search(ctx, query, page)
	case SourceSaved:
		// The saved listing is id-based and unpaged; resolve each id to a
		// full post and drop entries that have since been unpublished.
		if page > 1 {
			return nil, nil
		}
		ids, err := interactions.SavedPosts(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]domain.Post, 0, len(ids))
		for _, id := range ids {
			p, err := posts.Get(ctx, id)
			if err != nil {
				continue
			}
			items = append(items, p)
		}
		return items, nil
	default:
		return posts.Latest(ctx, page)
	}
}

// postFetcher and savedLister are the slices of app.PostService and
// app.InteractionService the fetch path needs.
type postFetcher interface {
	Latest(ctx context.Context, page int) ([]domain.Post, error)
	ByCategory(ctx context.Context, slug string, page int) ([]domain.Post, error)
	ByTag(ctx context.Context, slug string, page int) ([]domain.Post, error)
	Search(ctx context.Context, query string, page int) ([]domain.Post, error)
	Get(ctx context.Context, id string) (domain.Post, error)
}

type savedLister interface {
	SavedPosts(ctx context.Context) ([]string, error)
}

func (m Model) fetchCategories() tea.Cmd {
	taxonomy := m.taxonomy
	return func() tea.Msg {
		cats, err := taxonomy.Categories(context.Background())
		return CategoriesLoadedMsg{Categories: cats, Err: err}
	}
}

func (m Model) fetchTags() tea.Cmd {
	taxonomy := m.taxonomy
	return func() tea.Msg {
		tags, err := taxonomy.Tags(context.Background())
		return TagsLoadedMsg{Tags: tags, Err: err}
	}
}
