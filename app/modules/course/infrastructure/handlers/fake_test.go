package coursehandlers

import (
	"context"

	courseservice "github.com/Black-And-White-Club/chainchaser/app/modules/course/application"
	"github.com/Black-And-White-Club/chainchaser/app/shared/geo"
)

type FakeService struct {
	SaveCourseFunc  func(ctx context.Context, name string, location *geo.Point) (*courseservice.CourseView, error)
	ListCoursesFunc func(ctx context.Context) ([]*courseservice.CourseView, error)
	GetCourseFunc   func(ctx context.Context, name string) (*courseservice.CourseView, error)
	EditLayoutFunc  func(ctx context.Context, req courseservice.EditRequest) (*courseservice.CourseView, error)
	BuildMapFunc    func(ctx context.Context, req courseservice.MapRequest) (*courseservice.MapView, error)
}

func (f *FakeService) SaveCourse(ctx context.Context, name string, location *geo.Point) (*courseservice.CourseView, error) {
	if f.SaveCourseFunc != nil {
		return f.SaveCourseFunc(ctx, name, location)
	}
	return &courseservice.CourseView{Name: name}, nil
}

func (f *FakeService) ListCourses(ctx context.Context) ([]*courseservice.CourseView, error) {
	if f.ListCoursesFunc != nil {
		return f.ListCoursesFunc(ctx)
	}
	return []*courseservice.CourseView{}, nil
}

func (f *FakeService) GetCourse(ctx context.Context, name string) (*courseservice.CourseView, error) {
	if f.GetCourseFunc != nil {
		return f.GetCourseFunc(ctx, name)
	}
	return &courseservice.CourseView{Name: name}, nil
}

func (f *FakeService) EditLayout(ctx context.Context, req courseservice.EditRequest) (*courseservice.CourseView, error) {
	if f.EditLayoutFunc != nil {
		return f.EditLayoutFunc(ctx, req)
	}
	return &courseservice.CourseView{Name: req.Course, LayoutVersion: 1}, nil
}

func (f *FakeService) BuildMap(ctx context.Context, req courseservice.MapRequest) (*courseservice.MapView, error) {
	if f.BuildMapFunc != nil {
		return f.BuildMapFunc(ctx, req)
	}
	return &courseservice.MapView{Course: req.Course}, nil
}

var _ courseservice.Service = (*FakeService)(nil)
