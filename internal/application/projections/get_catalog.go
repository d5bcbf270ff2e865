package projections

import (
	"context"

	"campus/internal/adapters/storage/course"
	domainCategory "campus/internal/domain/category"
	domainCourse "campus/internal/domain/course"
)

// GetCatalogQuery carries query parameters.
type GetCatalogQuery struct {
	CategoryID string
	Search     string
	Limit      int
	Offset     int
}

// CatalogCourse is a catalog entry with resolved display names.
type CatalogCourse struct {
	Course         domainCourse.Course
	CategoryName   string
	InstructorName string
	LessonCount    int
}

// GetCatalogResult carries the query result.
type GetCatalogResult struct {
	Courses    []CatalogCourse
	Categories []domainCategory.Category
	Total      int
}

// GetCatalogDeps holds dependencies for GetCatalog.
type GetCatalogDeps struct {
	CourseStore   CourseStore
	CategoryStore CategoryStore
	LessonStore   LessonStore
	AccountStore  AccountStore // optional: nil skips instructor names
}

// QueryGetCatalog lists approved courses for the public catalog, optionally
// narrowed by category or a title search.
// POST: Only Approved courses appear; Total counts matches across pages
func QueryGetCatalog(ctx context.Context, query GetCatalogQuery, deps GetCatalogDeps) (GetCatalogResult, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 50
	}
	filter := course.ListFilter{
		Limit:      limit,
		Offset:     query.Offset,
		CategoryID: query.CategoryID,
		Status:     domainCourse.StatusApproved,
		Search:     query.Search,
	}

	courses, err := deps.CourseStore.List(ctx, filter)
	if err != nil {
		return GetCatalogResult{}, err
	}
	total, err := deps.CourseStore.Count(ctx, filter)
	if err != nil {
		return GetCatalogResult{}, err
	}
	categories, err := deps.CategoryStore.List(ctx)
	if err != nil {
		return GetCatalogResult{}, err
	}

	categoryNames := make(map[string]string, len(categories))
	for _, cat := range categories {
		categoryNames[cat.ID] = cat.Name
	}

	result := GetCatalogResult{Categories: categories, Total: total}
	instructorNames := make(map[string]string)
	for _, c := range courses {
		entry := CatalogCourse{Course: c, CategoryName: categoryNames[c.CategoryID]}
		if count, err := deps.LessonStore.CountByCourse(ctx, c.ID); err == nil {
			entry.LessonCount = count
		}
		if deps.AccountStore != nil && c.InstructorID != "" {
			name, ok := instructorNames[c.InstructorID]
			if !ok {
				if a, err := deps.AccountStore.GetByID(ctx, c.InstructorID); err == nil {
					name = a.FullName
				}
				instructorNames[c.InstructorID] = name
			}
			entry.InstructorName = name
		}
		result.Courses = append(result.Courses, entry)
	}

	return result, nil
}
