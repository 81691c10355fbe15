package models

import "testing"

func TestParsePageQuery(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		pageSize string
		want     PageQuery
	}{
		{name: "defaults", want: PageQuery{Page: 1, PageSize: DefaultPageSize}},
		{name: "explicit", page: "3", pageSize: "25", want: PageQuery{Page: 3, PageSize: 25}},
		{name: "page below one", page: "0", pageSize: "5", want: PageQuery{Page: 1, PageSize: 5}},
		{name: "negative page size", page: "2", pageSize: "-4", want: PageQuery{Page: 2, PageSize: 1}},
		{name: "zero page size", pageSize: "0", want: PageQuery{Page: 1, PageSize: 1}},
		{name: "page size above max", pageSize: "1000", want: PageQuery{Page: 1, PageSize: MaxPageSize}},
		{name: "garbage", page: "abc", pageSize: "x", want: PageQuery{Page: 1, PageSize: DefaultPageSize}},
		{name: "huge page", page: "922337203685477582", pageSize: "10", want: PageQuery{Page: MaxPage, PageSize: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePageQuery(tt.page, tt.pageSize, "")
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   PageQuery
		want PageQuery
	}{
		{name: "zero value", in: PageQuery{}, want: PageQuery{Page: 1, PageSize: DefaultPageSize}},
		{name: "negative size", in: PageQuery{Page: 2, PageSize: -3}, want: PageQuery{Page: 2, PageSize: 1}},
		{name: "page capped", in: PageQuery{Page: int(^uint(0) >> 1), PageSize: MaxPageSize}, want: PageQuery{Page: MaxPage, PageSize: MaxPageSize}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			if got.Offset() < 0 {
				t.Fatalf("negative offset %d", got.Offset())
			}
		})
	}
}

func TestParsePageQueryTrimsSearch(t *testing.T) {
	got := ParsePageQuery("", "", "  hello ")
	if got.Q != "hello" {
		t.Fatalf("expected trimmed query, got %q", got.Q)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{100, 1, 100},
		{101, 100, 2},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.pageSize); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.pageSize, got, tt.want)
		}
	}
}

func TestOffset(t *testing.T) {
	q := PageQuery{Page: 3, PageSize: 20}
	if q.Offset() != 40 {
		t.Fatalf("unexpected offset %d", q.Offset())
	}
}

func TestNewPageNeverReturnsNilData(t *testing.T) {
	p := NewPage[int](nil, PageQuery{Page: 1, PageSize: 10}, 0)
	if p.Data == nil {
		t.Fatalf("expected empty slice")
	}
	if p.TotalPages != 1 {
		t.Fatalf("expected one page, got %d", p.TotalPages)
	}
}

func TestParseStatusFilter(t *testing.T) {
	cases := map[string]StatusFilter{
		"":          StatusAll,
		"ALL":       StatusAll,
		"draft":     StatusDraft,
		"PUBLISHED": StatusPublished,
		"archived":  StatusAll,
	}
	for in, want := range cases {
		if got := ParseStatusFilter(in); got != want {
			t.Errorf("ParseStatusFilter(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestActorCanManage(t *testing.T) {
	owner := Actor{UserID: 7}
	admin := Actor{UserID: 1, IsAdmin: true}
	stranger := Actor{UserID: 8}

	if !owner.CanManage(7) {
		t.Fatalf("owner should manage own resource")
	}
	if !admin.CanManage(7) {
		t.Fatalf("admin should manage any resource")
	}
	if stranger.CanManage(7) {
		t.Fatalf("stranger must not manage someone else's resource")
	}
	if (Actor{}).CanManage(0) {
		t.Fatalf("anonymous actor must not match an unset owner")
	}
}
