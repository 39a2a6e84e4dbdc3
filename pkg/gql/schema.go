// Package gql exposes the same entities as the REST surface through a
// single GraphQL endpoint, with nested relations resolved lazily.
package gql

// Schema is the GraphQL schema. Nested fields (Post.author, User.posts)
// trigger their own store queries only when a client selects them.
const Schema = `
	schema {
		query: Query
	}

	type Query {
		posts(page: Int, limit: Int, sortBy: String, order: String, search: String): PostsResponse!
		user(id: Int!): User
		users: [User!]!
	}

	type User {
		id: Int!
		name: String!
		email: String!
		posts(limit: Int): [Post!]!
	}

	type Post {
		id: Int!
		title: String!
		content: String!
		authorId: Int!
		createdAt: String!
		author: User
	}

	type PaginationInfo {
		page: Int!
		limit: Int!
		total: Int!
		totalPages: Int!
	}

	type PostsResponse {
		data: [Post!]!
		pagination: PaginationInfo!
	}
`
