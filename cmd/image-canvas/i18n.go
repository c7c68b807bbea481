package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Japanese translations for CLI help and log messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"MCP server for creating, drawing on and compositing images":    "画像の作成・描画・合成を行うMCPサーバー",
		"image-canvas communicates via MCP protocol over stdin/stdout.": "image-canvasは標準入出力を通じてMCPプロトコルで通信します。",
		"Configure it in your MCP client (e.g., Claude Desktop).":       "MCPクライアント（例: Claude Desktop）で設定してください。",

		// Flags
		"YAML configuration file":                     "YAML設定ファイル",
		"Log level (debug, info, warn, error, quiet)": "ログレベル（debug, info, warn, error, quiet）",

		// Commands
		"Serve MCP requests on stdin/stdout (default)": "標準入出力でMCPリクエストを処理（デフォルト）",
		"List readable and writable image formats":     "読み込み・書き込み可能な画像形式を一覧表示",
		"Show version information":                     "バージョン情報を表示",
		"Readable":                                     "読み込み",
		"Writable":                                     "書き込み",
		"image-canvas version %s":                      "image-canvas バージョン %s",
		"Build time":                                   "ビルド日時",
		"Git commit":                                   "Gitコミット",

		// Runtime messages
		"Image canvas server %s (built %s, commit %s)": "画像キャンバスサーバー %s (ビルド %s, コミット %s)",
		"Image canvas server %s ready":                 "画像キャンバスサーバー %s 準備完了",
		"Input closed, shutting down":                  "入力が閉じられました。シャットダウン中",
		"Interrupted, shutting down...":                "中断されました。シャットダウン中...",
		"Server error: %v":                             "サーバーエラー: %v",
		"Failed to parse request: %v":                  "リクエストの解析に失敗しました: %v",
		"Failed to encode response: %v":                "レスポンスのエンコードに失敗しました: %v",
		"Request %s":                                   "リクエスト %s",
		"Calling tool %s":                              "ツール %s を呼び出し中",
		"Tool %s failed: %v":                           "ツール %s が失敗しました: %v",
		"Registered image %s (%dx%d)":                  "画像 %s を登録しました (%dx%d)",
		"Wrote image %s to %s":                         "画像 %s を %s に書き込みました",
		"Read %d EXIF tags from %s: %s":                "%[2]s から %[1]d 件のEXIFタグを読み込みました: %[3]s",
		"Releasing %d images":                          "%d 件の画像を解放中",
	})
}
