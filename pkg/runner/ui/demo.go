package ui

import (
	"context"
	"fmt"
	"os"
	"time"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/store"
)

// Demo returns a few months of sample entries around now.
func Demo(now time.Time) []entry.Raw {
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format(entry.DateLayout)
	}
	return []entry.Raw{
		{Date: day(0), Rating: 4.5, Categories: []string{"walk", "outdoors"}, Description: "Long walk along the river, first cold morning of the season."},
		{Date: day(-2), Rating: 3, Categories: []string{"work"}, Description: "Shipped the release, then a slow afternoon."},
		{Date: day(-5), Rating: 5, Categories: []string{"family"}, Description: "Dinner with everyone."},
		{Date: day(-9), Rating: 2.5, Categories: []string{"health"}, Description: "Caught a cold."},
		{Date: day(-17), Rating: 4, Categories: []string{"travel"}, ImgURL: "https://picsum.photos/id/1015/600/400", Description: "Train to the coast."},
		{Date: day(-33), Rating: 3.5, Categories: []string{"reading"}, Description: "Finished the novel."},
		{Date: day(-48), Rating: 1, Description: "Rained all day."},
		{Date: day(-70), Rating: 4.5, Categories: []string{"outdoors"}, ImgURL: "https://picsum.photos/id/1018/600/400", Description: "Hike above the tree line."},
		{Date: day(12), Rating: 0, Categories: []string{"plan"}, Description: "Dentist."},
	}
}

// DemoStore imports Demo into a fresh temporary store. The caller removes
// the returned directory.
func DemoStore(ctx context.Context, now time.Time) (store.Persistence, string, error) {
	dir, err := os.MkdirTemp("", "daybook-demo-")
	if err != nil {
		return nil, "", err
	}
	p, err := store.Load(store.Path(dir))
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, "", err
	}
	if _, errs := p.Import(ctx, Demo(now)); len(errs) > 0 {
		_ = os.RemoveAll(dir)
		return nil, "", fmt.Errorf("demo: %v", errs[0])
	}
	return p, dir, nil
}
