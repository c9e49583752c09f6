package mdcard

import "testing"

func TestPlatformText(t *testing.T) {
	t.Parallel()

	in := "# 标题\n> 引用\n- 条目\n```\ncode\n```"
	want := "【标题】\n\n" + QuotePrefix + "引用\n" + BulletPrefix + "条目\n" +
		CodeStartMarker + "\ncode\n" + CodeEndMarker

	if got := PlatformText(in); got != want {
		t.Errorf("PlatformText() = %q, want %q", got, want)
	}
	if got := PlatformText(""); got != "" {
		t.Errorf("PlatformText(\"\") = %q, want empty", got)
	}
}
