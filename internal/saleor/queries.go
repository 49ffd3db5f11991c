package saleor

const productFields = `
fragment ProductFields on Product {
  id
  name
  slug
  description
  externalReference
  created
  updatedAt
  productType {
    id
    name
  }
  category {
    id
    name
  }
  thumbnail {
    url
    alt
  }
  pricing {
    onSale
    priceRange {
      ...MoneyRangeFields
    }
    priceRangeUndiscounted {
      ...MoneyRangeFields
    }
  }
}

fragment MoneyRangeFields on TaxedMoneyRange {
  start {
    gross {
      amount
      currency
    }
  }
  stop {
    gross {
      amount
      currency
    }
  }
}
`

const listProductsQuery = `
query ListProducts(
  $first: Int!
  $after: String
  $channel: String!
  $where: ProductWhereInput
  $sortBy: ProductOrder
  $search: String
) {
  products(
    first: $first
    after: $after
    channel: $channel
    where: $where
    sortBy: $sortBy
    search: $search
  ) {
    edges {
      node {
        ...ProductFields
      }
    }
    pageInfo {
      endCursor
      hasNextPage
    }
  }
}
` + productFields

const productByIDQuery = `
query ProductByID($id: ID!, $channel: String!) {
  product(id: $id, channel: $channel) {
    ...ProductFields
  }
}
` + productFields
