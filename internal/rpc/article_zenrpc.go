package rpc

import (
	"context"
	"encoding/json"

	"github.com/vmkteam/zenrpc/v2"
	"github.com/vmkteam/zenrpc/v2/smd"
)

var RPC = struct {
	ArticleService struct{ List, Latest, Get, Search, ByTag, Tags, AdminList, Create, Update, Delete string }
}{
	ArticleService: struct{ List, Latest, Get, Search, ByTag, Tags, AdminList, Create, Update, Delete string }{
		List:      "list",
		Latest:    "latest",
		Get:       "get",
		Search:    "search",
		ByTag:     "bytag",
		Tags:      "tags",
		AdminList: "adminlist",
		Create:    "create",
		Update:    "update",
		Delete:    "delete",
	},
}

func articleSchema(name, description string) smd.JSONSchema {
	return smd.JSONSchema{Name: name, Type: smd.Object, Description: description}
}

func (ArticleService) SMD() smd.ServiceInfo {
	return smd.ServiceInfo{
		Methods: map[string]smd.Service{
			"List": {
				Description: `List returns one page of published articles sorted by publishedAt DESC.`,
				Parameters:  []smd.JSONSchema{articleSchema("filter", "page and size")},
				Returns:     articleSchema("", "page of articles with pagination info"),
				Errors:      map[int]string{500: "internal server error"},
			},
			"Latest": {
				Description: `Latest returns the newest published articles.`,
				Parameters: []smd.JSONSchema{
					{Name: "limit", Type: smd.Integer, Optional: true, Description: "number of articles, at most 50"},
				},
				Returns: smd.JSONSchema{Type: smd.Array, Description: "list of articles"},
				Errors:  map[int]string{500: "internal server error"},
			},
			"Get": {
				Description: `Get returns a published article by id or slug.`,
				Parameters: []smd.JSONSchema{
					{Name: "id", Type: smd.String, Description: "article UUID or slug"},
				},
				Returns: articleSchema("", "article"),
				Errors:  map[int]string{404: "article not found", 500: "internal server error"},
			},
			"Search": {
				Description: `Search matches the term against title, excerpt and body of published articles.`,
				Parameters: []smd.JSONSchema{
					{Name: "searchTerm", Type: smd.String, Description: "literal, case-insensitive"},
				},
				Returns: smd.JSONSchema{Type: smd.Array, Description: "list of articles"},
				Errors:  map[int]string{500: "internal server error"},
			},
			"ByTag": {
				Description: `ByTag returns published articles with the tag.`,
				Parameters: []smd.JSONSchema{
					{Name: "tag", Type: smd.String, Description: "tag name or slug"},
				},
				Returns: smd.JSONSchema{Type: smd.Array, Description: "list of articles"},
				Errors:  map[int]string{500: "internal server error"},
			},
			"Tags": {
				Description: `Tags retrieves all tags ordered by name.`,
				Parameters:  []smd.JSONSchema{},
				Returns:     smd.JSONSchema{Type: smd.Array, Description: "list of tags"},
				Errors:      map[int]string{500: "internal server error"},
			},
			"AdminList": {
				Description: `AdminList returns articles of every status.`,
				Parameters: []smd.JSONSchema{
					{Name: "status", Type: smd.String, Optional: true, Description: "optional DRAFT or PUBLISHED filter"},
				},
				Returns: smd.JSONSchema{Type: smd.Array, Description: "list of articles"},
				Errors:  map[int]string{400: "invalid status", 500: "internal server error"},
			},
			"Create": {
				Description: `Create stores a new article.`,
				Parameters:  []smd.JSONSchema{articleSchema("article", "article fields")},
				Returns:     articleSchema("", "created article"),
				Errors:      map[int]string{400: "validation failed", 409: "slug already exists", 500: "internal server error"},
			},
			"Update": {
				Description: `Update changes the supplied fields of an article.`,
				Parameters: []smd.JSONSchema{
					{Name: "id", Type: smd.String, Description: "article UUID"},
					articleSchema("article", "changed fields"),
				},
				Returns: articleSchema("", "updated article"),
				Errors:  map[int]string{400: "validation failed", 404: "article not found", 409: "slug already exists", 500: "internal server error"},
			},
			"Delete": {
				Description: `Delete removes an article and its tag links.`,
				Parameters: []smd.JSONSchema{
					{Name: "id", Type: smd.String, Description: "article UUID"},
				},
				Returns: smd.JSONSchema{Type: smd.Boolean, Description: "true on success"},
				Errors:  map[int]string{404: "article not found", 500: "internal server error"},
			},
		},
	}
}

// unmarshalArgs accepts params as a named object or as a positional array.
func unmarshalArgs(params json.RawMessage, names []string, args interface{}) *zenrpc.Response {
	var err error
	if zenrpc.IsArray(params) {
		if params, err = zenrpc.ConvertToObject(names, params); err != nil {
			resp := zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			return &resp
		}
	}

	if len(params) > 0 {
		if err := json.Unmarshal(params, args); err != nil {
			resp := zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			return &resp
		}
	}

	return nil
}

// Invoke dispatches method to ArticleService, decoding named or positional params.
func (s ArticleService) Invoke(ctx context.Context, method string, params json.RawMessage) zenrpc.Response {
	resp := zenrpc.Response{}

	switch method {
	case RPC.ArticleService.List:
		var args = struct {
			Filter ArticleFilter `json:"filter"`
		}{}
		if r := unmarshalArgs(params, []string{"filter"}, &args); r != nil {
			return *r
		}

		resp.Set(s.List(ctx, args.Filter))

	case RPC.ArticleService.Latest:
		var args = struct {
			Limit *int `json:"limit"`
		}{}
		if r := unmarshalArgs(params, []string{"limit"}, &args); r != nil {
			return *r
		}

		//zenrpc:limit=6
		if args.Limit == nil {
			var v int = 6
			args.Limit = &v
		}

		resp.Set(s.Latest(ctx, args.Limit))

	case RPC.ArticleService.Get:
		var args = struct {
			Id string `json:"id"`
		}{}
		if r := unmarshalArgs(params, []string{"id"}, &args); r != nil {
			return *r
		}

		resp.Set(s.Get(ctx, args.Id))

	case RPC.ArticleService.Search:
		var args = struct {
			SearchTerm string `json:"searchTerm"`
		}{}
		if r := unmarshalArgs(params, []string{"searchTerm"}, &args); r != nil {
			return *r
		}

		resp.Set(s.Search(ctx, args.SearchTerm))

	case RPC.ArticleService.ByTag:
		var args = struct {
			Tag string `json:"tag"`
		}{}
		if r := unmarshalArgs(params, []string{"tag"}, &args); r != nil {
			return *r
		}

		resp.Set(s.ByTag(ctx, args.Tag))

	case RPC.ArticleService.Tags:
		resp.Set(s.Tags(ctx))

	case RPC.ArticleService.AdminList:
		var args = struct {
			Status *string `json:"status"`
		}{}
		if r := unmarshalArgs(params, []string{"status"}, &args); r != nil {
			return *r
		}

		resp.Set(s.AdminList(ctx, args.Status))

	case RPC.ArticleService.Create:
		var args = struct {
			Article ArticleInput `json:"article"`
		}{}
		if r := unmarshalArgs(params, []string{"article"}, &args); r != nil {
			return *r
		}

		resp.Set(s.Create(ctx, args.Article))

	case RPC.ArticleService.Update:
		var args = struct {
			Id      string       `json:"id"`
			Article ArticlePatch `json:"article"`
		}{}
		if r := unmarshalArgs(params, []string{"id", "article"}, &args); r != nil {
			return *r
		}

		resp.Set(s.Update(ctx, args.Id, args.Article))

	case RPC.ArticleService.Delete:
		var args = struct {
			Id string `json:"id"`
		}{}
		if r := unmarshalArgs(params, []string{"id"}, &args); r != nil {
			return *r
		}

		resp.Set(s.Delete(ctx, args.Id))

	default:
		resp = zenrpc.NewResponseError(nil, zenrpc.MethodNotFound, "", nil)
	}

	return resp
}
