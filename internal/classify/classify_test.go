package classify

import (
	"testing"

	"github.com/kazumasamatsumoto/angular-module-analyzer/internal/modules"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		rec  modules.Record
		want modules.Kind
	}{
		{
			name: "explicit kind wins over path",
			rec:  modules.Record{Name: "AdminModule", Path: "src/app/features/admin/admin.module.ts", Kind: modules.KindCore},
			want: modules.KindCore,
		},
		{
			name: "core path segment",
			rec:  modules.Record{Name: "AuthModule", Path: "src/app/core/auth/auth.module.ts"},
			want: modules.KindCore,
		},
		{
			name: "shared path segment",
			rec:  modules.Record{Name: "WidgetsModule", Path: "src/app/shared/widgets/widgets.module.ts"},
			want: modules.KindShared,
		},
		{
			name: "features path segment",
			rec:  modules.Record{Name: "OrdersModule", Path: "src/app/features/orders/orders.module.ts"},
			want: modules.KindFeature,
		},
		{
			name: "singular feature segment",
			rec:  modules.Record{Name: "BillingModule", Path: "src/app/feature/billing/billing.module.ts"},
			want: modules.KindFeature,
		},
		{
			name: "windows path separators",
			rec:  modules.Record{Name: "AuthModule", Path: `src\app\core\auth\auth.module.ts`},
			want: modules.KindCore,
		},
		{
			name: "core.module filename without core directory",
			rec:  modules.Record{Name: "CoreModule", Path: "src/app/core.module.ts"},
			want: modules.KindCore,
		},
		{
			name: "shared.module filename without shared directory",
			rec:  modules.Record{Name: "SharedModule", Path: "src/app/shared.module.ts"},
			want: modules.KindShared,
		},
		{
			name: "name suffix fallback",
			rec:  modules.Record{Name: "AppSharedModule", Path: "src/app/app.module.ts"},
			want: modules.KindShared,
		},
		{
			name: "feature name suffix fallback",
			rec:  modules.Record{Name: "SearchFeatureModule", Path: "src/app/search/search.module.ts"},
			want: modules.KindFeature,
		},
		{
			name: "no heuristic matches",
			rec:  modules.Record{Name: "AppModule", Path: "src/app/app.module.ts"},
			want: modules.KindUnknown,
		},
		{
			name: "case-insensitive path",
			rec:  modules.Record{Name: "AuthModule", Path: "src/app/Core/auth.module.ts"},
			want: modules.KindCore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.rec); got != tt.want {
				t.Errorf("Classify(%s) = %s, expected %s", tt.rec.Name, got, tt.want)
			}
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	rec := modules.Record{Name: "UserModule", Path: "src/app/features/user/user.module.ts"}
	first := Classify(rec)
	for i := 0; i < 10; i++ {
		if got := Classify(rec); got != first {
			t.Fatalf("classification not deterministic: %s then %s", first, got)
		}
	}
}

func TestApply(t *testing.T) {
	records := []modules.Record{
		{Name: "CoreModule", Path: "src/app/core/core.module.ts"},
		{Name: "UserModule", Path: "src/app/features/user/user.module.ts"},
		{Name: "AppModule", Path: "src/app/app.module.ts"},
	}

	out := Apply(records, nil)

	if out[0].Kind != modules.KindCore {
		t.Errorf("CoreModule: expected Core, got %s", out[0].Kind)
	}
	if out[1].Kind != modules.KindFeature {
		t.Errorf("UserModule: expected Feature, got %s", out[1].Kind)
	}
	if out[2].Kind != modules.KindUnknown {
		t.Errorf("AppModule: expected Unknown, got %s", out[2].Kind)
	}

	// Input must not be mutated
	if records[0].Kind != "" {
		t.Error("Apply mutated its input records")
	}
}

func TestApply_Overrides(t *testing.T) {
	records := []modules.Record{
		{Name: "UserModule", Path: "src/app/features/user/user.module.ts"},
	}

	out := Apply(records, map[string]modules.Kind{"UserModule": modules.KindShared})
	if out[0].Kind != modules.KindShared {
		t.Errorf("expected override to Shared, got %s", out[0].Kind)
	}

	// Invalid override values fall back to the heuristic chain
	out = Apply(records, map[string]modules.Kind{"UserModule": modules.Kind("Widget")})
	if out[0].Kind != modules.KindFeature {
		t.Errorf("expected invalid override to be ignored, got %s", out[0].Kind)
	}
}
